package repositories

import (
	"errors"
	"strings"
	"time"

	"hotel-booking-backend/models"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the MySQL-backed Store. A zero-value GormStore is not
// usable; build one with NewGormStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Rooms() RoomRepository               { return &gormRoomRepo{db: s.db} }
func (s *GormStore) Bookings() BookingRepository         { return &gormBookingRepo{db: s.db} }
func (s *GormStore) Enquiries() EnquiryRepository        { return &gormEnquiryRepo{db: s.db} }
func (s *GormStore) Payments() PaymentRepository         { return &gormPaymentRepo{db: s.db} }
func (s *GormStore) BlockedDates() BlockedDateRepository { return &gormBlockedDateRepo{db: s.db} }
func (s *GormStore) Settings() SettingRepository         { return &gormSettingRepo{db: s.db} }
func (s *GormStore) Admins() AdminRepository             { return &gormAdminRepo{db: s.db} }

func (s *GormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return ErrDuplicate
	}
	// SQLite and friends in dev setups word it differently.
	lc := strings.ToLower(err.Error())
	if strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique") {
		return ErrDuplicate
	}
	return err
}

// ---------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------

type gormRoomRepo struct{ db *gorm.DB }

func (r *gormRoomRepo) Create(room *models.Room) error {
	return translateErr(r.db.Create(room).Error)
}

func (r *gormRoomRepo) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &room, nil
}

func (r *gormRoomRepo) GetForUpdate(id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &room, nil
}

func (r *gormRoomRepo) List(activeOnly bool) ([]models.Room, error) {
	var rooms []models.Room
	q := r.db.Order("room_number")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&rooms).Error; err != nil {
		return nil, translateErr(err)
	}
	return rooms, nil
}

func (r *gormRoomRepo) Update(room *models.Room) error {
	return translateErr(r.db.Save(room).Error)
}

func (r *gormRoomRepo) Delete(id uint) error {
	res := r.db.Delete(&models.Room{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------

type gormBookingRepo struct{ db *gorm.DB }

func (r *gormBookingRepo) Create(b *models.Booking) error {
	return translateErr(r.db.Create(b).Error)
}

func (r *gormBookingRepo) GetByID(id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.Preload("Room").First(&b, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &b, nil
}

func (r *gormBookingRepo) GetForUpdate(id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &b, nil
}

func (r *gormBookingRepo) GetByReference(ref string) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.Preload("Room").Where("booking_reference = ?", ref).First(&b).Error; err != nil {
		return nil, translateErr(err)
	}
	return &b, nil
}

func (r *gormBookingRepo) List(f BookingFilter) ([]models.Booking, error) {
	var bookings []models.Booking
	q := r.db.Preload("Room").Order("check_in_date")
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("check_out_date > ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("check_in_date < ?", *f.To)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, translateErr(err)
	}
	return bookings, nil
}

func (r *gormBookingRepo) overlapQuery(roomID uint, checkIn, checkOut time.Time) *gorm.DB {
	// Half-open intervals: [in, out) overlaps [otherIn, otherOut) iff
	// otherIn < out AND otherOut > in. Same-day turnover never matches.
	return r.db.
		Where("room_id = ?", roomID).
		Where("status IN ?", models.ActiveBookingStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
}

func (r *gormBookingRepo) ActiveOverlapping(roomID uint, checkIn, checkOut time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.overlapQuery(roomID, checkIn, checkOut).Order("check_in_date").Find(&bookings).Error; err != nil {
		return nil, translateErr(err)
	}
	return bookings, nil
}

func (r *gormBookingRepo) ActiveOverlappingForUpdate(roomID uint, checkIn, checkOut time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.overlapQuery(roomID, checkIn, checkOut).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&bookings).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return bookings, nil
}

func (r *gormBookingRepo) ReferenceExists(ref string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Booking{}).Unscoped().Where("booking_reference = ?", ref).Count(&count).Error; err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

func (r *gormBookingRepo) Update(b *models.Booking) error {
	return translateErr(r.db.Save(b).Error)
}

// ---------------------------------------------------------------------
// Conference enquiries
// ---------------------------------------------------------------------

type gormEnquiryRepo struct{ db *gorm.DB }

func (r *gormEnquiryRepo) Create(e *models.ConferenceEnquiry) error {
	return translateErr(r.db.Create(e).Error)
}

func (r *gormEnquiryRepo) GetByID(id uint) (*models.ConferenceEnquiry, error) {
	var e models.ConferenceEnquiry
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &e, nil
}

func (r *gormEnquiryRepo) GetForUpdate(id uint) (*models.ConferenceEnquiry, error) {
	var e models.ConferenceEnquiry
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&e, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &e, nil
}

func (r *gormEnquiryRepo) List() ([]models.ConferenceEnquiry, error) {
	var enquiries []models.ConferenceEnquiry
	if err := r.db.Order("event_date").Find(&enquiries).Error; err != nil {
		return nil, translateErr(err)
	}
	return enquiries, nil
}

func (r *gormEnquiryRepo) ReferenceExists(ref string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ConferenceEnquiry{}).Unscoped().Where("enquiry_reference = ?", ref).Count(&count).Error; err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

func (r *gormEnquiryRepo) Update(e *models.ConferenceEnquiry) error {
	return translateErr(r.db.Save(e).Error)
}

// ---------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------

type gormPaymentRepo struct{ db *gorm.DB }

func (r *gormPaymentRepo) Create(p *models.Payment) error {
	return translateErr(r.db.Create(p).Error)
}

func (r *gormPaymentRepo) GetByID(id uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *gormPaymentRepo) ListByOwner(ownerType string, ownerID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("booking_type = ? AND booking_id = ?", ownerType, ownerID).
		Order("payment_date, id").
		Find(&payments).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return payments, nil
}

func (r *gormPaymentRepo) CompletedByOwner(ownerType string, ownerID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.
		Where("booking_type = ? AND booking_id = ? AND status = ?", ownerType, ownerID, models.PaymentStatusCompleted).
		Order("payment_date, id").
		Find(&payments).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return payments, nil
}

func (r *gormPaymentRepo) ReferenceExists(ref string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Payment{}).Unscoped().Where("payment_reference = ?", ref).Count(&count).Error; err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

func (r *gormPaymentRepo) ReceiptNumberExists(receipt string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Payment{}).Unscoped().Where("receipt_number = ?", receipt).Count(&count).Error; err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

func (r *gormPaymentRepo) Update(p *models.Payment) error {
	return translateErr(r.db.Save(p).Error)
}

func (r *gormPaymentRepo) SoftDelete(id uint) error {
	res := r.db.Delete(&models.Payment{}, id)
	if res.Error != nil {
		return translateErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------
// Blocked dates
// ---------------------------------------------------------------------

type gormBlockedDateRepo struct{ db *gorm.DB }

func (r *gormBlockedDateRepo) Create(b *models.BlockedDate) error {
	return translateErr(r.db.Create(b).Error)
}

func (r *gormBlockedDateRepo) Delete(roomID *uint, date time.Time) (bool, error) {
	q := r.db.Where("date = ?", date)
	if roomID == nil {
		q = q.Where("room_id IS NULL")
	} else {
		q = q.Where("room_id = ?", *roomID)
	}
	res := q.Delete(&models.BlockedDate{})
	if res.Error != nil {
		return false, translateErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *gormBlockedDateRepo) List(roomID *uint, from, to time.Time) ([]models.BlockedDate, error) {
	var blocks []models.BlockedDate
	q := r.db.Where("date >= ? AND date < ?", from, to).Order("date")
	if roomID != nil {
		q = q.Where("room_id = ? OR room_id IS NULL", *roomID)
	}
	if err := q.Find(&blocks).Error; err != nil {
		return nil, translateErr(err)
	}
	return blocks, nil
}

func (r *gormBlockedDateRepo) AnyForRoom(roomID uint, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlockedDate{}).
		Where("date >= ? AND date < ?", from, to).
		Where("room_id = ? OR room_id IS NULL", roomID).
		Count(&count).Error
	if err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

func (r *gormBlockedDateRepo) Exists(roomID *uint, date time.Time) (bool, error) {
	var count int64
	q := r.db.Model(&models.BlockedDate{}).Where("date = ?", date)
	if roomID == nil {
		q = q.Where("room_id IS NULL")
	} else {
		q = q.Where("room_id = ?", *roomID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, translateErr(err)
	}
	return count > 0, nil
}

// ---------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------

type gormSettingRepo struct{ db *gorm.DB }

func (r *gormSettingRepo) Get(key string) (string, bool, error) {
	var s models.Setting
	if err := r.db.Where("setting_key = ?", key).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, translateErr(err)
	}
	return s.Value, true, nil
}

func (r *gormSettingRepo) Set(key, value string) error {
	s := models.Setting{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
	}).Create(&s).Error
	return translateErr(err)
}

func (r *gormSettingRepo) All() ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.Order("setting_key").Find(&settings).Error; err != nil {
		return nil, translateErr(err)
	}
	return settings, nil
}

// ---------------------------------------------------------------------
// Admins / auth
// ---------------------------------------------------------------------

type gormAdminRepo struct{ db *gorm.DB }

func (r *gormAdminRepo) Create(a *models.Admin) error {
	return translateErr(r.db.Create(a).Error)
}

func (r *gormAdminRepo) GetByID(id uint) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func (r *gormAdminRepo) GetByUsername(username string) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.Where("username = ?", username).First(&a).Error; err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func (r *gormAdminRepo) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, translateErr(err)
	}
	return count, nil
}

func (r *gormAdminRepo) CreateRole(role *models.Role) error {
	return translateErr(r.db.Create(role).Error)
}

func (r *gormAdminRepo) GetRoleByName(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Preload("Permissions").Where("LOWER(name) = LOWER(?)", name).First(&role).Error; err != nil {
		return nil, translateErr(err)
	}
	return &role, nil
}

func (r *gormAdminRepo) PermissionsForAdmin(adminID uint) ([]string, error) {
	var perms []string
	err := r.db.Model(&models.RolePermission{}).
		Joins("JOIN admins ON admins.role_id = role_permissions.role_id").
		Where("admins.id = ?", adminID).
		Pluck("role_permissions.permission", &perms).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return perms, nil
}

func (r *gormAdminRepo) CreateToken(t *models.AuthToken) error {
	return translateErr(r.db.Create(t).Error)
}

func (r *gormAdminRepo) GetToken(token string) (*models.AuthToken, error) {
	var t models.AuthToken
	err := r.db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&t).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &t, nil
}

func (r *gormAdminRepo) DeleteToken(token string) error {
	return translateErr(r.db.Where("token = ?", token).Delete(&models.AuthToken{}).Error)
}
