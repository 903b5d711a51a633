package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

// MemoryStore is a mutex-guarded in-memory Store used by the test suite
// and for local development without MySQL. Transactions snapshot the full
// data set and restore it when the closure fails, so the all-or-nothing
// behavior matches the SQL store.
type MemoryStore struct {
	mu   sync.Mutex
	data *memData
	inTx bool
	root *MemoryStore
}

type memData struct {
	rooms     map[uint]models.Room
	bookings  map[uint]models.Booking
	enquiries map[uint]models.ConferenceEnquiry
	payments  map[uint]models.Payment
	blocks    map[uint]models.BlockedDate
	settings  map[string]models.Setting
	admins    map[uint]models.Admin
	roles     map[uint]models.Role
	perms     []models.RolePermission
	tokens    map[string]models.AuthToken
	nextID    map[string]uint
}

func newMemData() *memData {
	return &memData{
		rooms:     map[uint]models.Room{},
		bookings:  map[uint]models.Booking{},
		enquiries: map[uint]models.ConferenceEnquiry{},
		payments:  map[uint]models.Payment{},
		blocks:    map[uint]models.BlockedDate{},
		settings:  map[string]models.Setting{},
		admins:    map[uint]models.Admin{},
		roles:     map[uint]models.Role{},
		tokens:    map[string]models.AuthToken{},
		nextID:    map[string]uint{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.rooms {
		c.rooms[k] = v
	}
	for k, v := range d.bookings {
		c.bookings[k] = v
	}
	for k, v := range d.enquiries {
		c.enquiries[k] = v
	}
	for k, v := range d.payments {
		c.payments[k] = v
	}
	for k, v := range d.blocks {
		c.blocks[k] = v
	}
	for k, v := range d.settings {
		c.settings[k] = v
	}
	for k, v := range d.admins {
		c.admins[k] = v
	}
	for k, v := range d.roles {
		c.roles[k] = v
	}
	c.perms = append(c.perms, d.perms...)
	for k, v := range d.tokens {
		c.tokens[k] = v
	}
	for k, v := range d.nextID {
		c.nextID[k] = v
	}
	return c
}

func (d *memData) id(entity string) uint {
	d.nextID[entity]++
	return d.nextID[entity]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: newMemData()}
}

func (s *MemoryStore) lock() {
	if !s.inTx {
		s.mu.Lock()
	}
}

func (s *MemoryStore) unlock() {
	if !s.inTx {
		s.mu.Unlock()
	}
}

func (s *MemoryStore) current() *memData {
	if s.root != nil {
		return s.root.data
	}
	return s.data
}

func (s *MemoryStore) Rooms() RoomRepository               { return &memRoomRepo{s: s} }
func (s *MemoryStore) Bookings() BookingRepository         { return &memBookingRepo{s: s} }
func (s *MemoryStore) Enquiries() EnquiryRepository        { return &memEnquiryRepo{s: s} }
func (s *MemoryStore) Payments() PaymentRepository         { return &memPaymentRepo{s: s} }
func (s *MemoryStore) BlockedDates() BlockedDateRepository { return &memBlockedDateRepo{s: s} }
func (s *MemoryStore) Settings() SettingRepository         { return &memSettingRepo{s: s} }
func (s *MemoryStore) Admins() AdminRepository             { return &memAdminRepo{s: s} }

func (s *MemoryStore) Transaction(fn func(Store) error) error {
	if s.inTx {
		// Nested transactions join the outer one, like gorm's default.
		return fn(s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	tx := &MemoryStore{inTx: true, root: s}
	if err := fn(tx); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// ---------------------------------------------------------------------
// Rooms
// ---------------------------------------------------------------------

type memRoomRepo struct{ s *MemoryStore }

func (r *memRoomRepo) Create(room *models.Room) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, existing := range d.rooms {
		if existing.DeletedAt.Valid {
			continue
		}
		if strings.EqualFold(existing.RoomNumber, room.RoomNumber) {
			return ErrDuplicate
		}
	}
	room.ID = d.id("room")
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	d.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepo) get(id uint) (*models.Room, error) {
	d := r.s.current()
	room, ok := d.rooms[id]
	if !ok || room.DeletedAt.Valid {
		return nil, ErrNotFound
	}
	out := room
	return &out, nil
}

func (r *memRoomRepo) GetByID(id uint) (*models.Room, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.get(id)
}

func (r *memRoomRepo) GetForUpdate(id uint) (*models.Room, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.get(id)
}

func (r *memRoomRepo) List(activeOnly bool) ([]models.Room, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	var rooms []models.Room
	for _, room := range d.rooms {
		if room.DeletedAt.Valid {
			continue
		}
		if activeOnly && !room.Active {
			continue
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms, nil
}

func (r *memRoomRepo) Update(room *models.Room) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	if _, ok := d.rooms[room.ID]; !ok {
		return ErrNotFound
	}
	room.UpdatedAt = time.Now()
	d.rooms[room.ID] = *room
	return nil
}

func (r *memRoomRepo) Delete(id uint) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	room, ok := d.rooms[id]
	if !ok || room.DeletedAt.Valid {
		return ErrNotFound
	}
	room.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	d.rooms[id] = room
	return nil
}

// ---------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------

type memBookingRepo struct{ s *MemoryStore }

func isActiveStatus(status string) bool {
	for _, s := range models.ActiveBookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (r *memBookingRepo) Create(b *models.Booking) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, existing := range d.bookings {
		if existing.BookingReference == b.BookingReference {
			return ErrDuplicate
		}
	}
	b.ID = d.id("booking")
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	d.bookings[b.ID] = *b
	return nil
}

func (r *memBookingRepo) get(id uint) (*models.Booking, error) {
	d := r.s.current()
	b, ok := d.bookings[id]
	if !ok || b.DeletedAt.Valid {
		return nil, ErrNotFound
	}
	if room, ok := d.rooms[b.RoomID]; ok {
		b.Room = room
	}
	out := b
	return &out, nil
}

func (r *memBookingRepo) GetByID(id uint) (*models.Booking, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.get(id)
}

func (r *memBookingRepo) GetForUpdate(id uint) (*models.Booking, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.get(id)
}

func (r *memBookingRepo) GetByReference(ref string) (*models.Booking, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for id, b := range d.bookings {
		if b.BookingReference == ref && !b.DeletedAt.Valid {
			return r.get(id)
		}
	}
	return nil, ErrNotFound
}

func (r *memBookingRepo) List(f BookingFilter) ([]models.Booking, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	var bookings []models.Booking
	for _, b := range d.bookings {
		if b.DeletedAt.Valid {
			continue
		}
		if f.RoomID != nil && b.RoomID != *f.RoomID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.From != nil && !b.CheckOutDate.After(*f.From) {
			continue
		}
		if f.To != nil && !b.CheckInDate.Before(*f.To) {
			continue
		}
		bookings = append(bookings, b)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CheckInDate.Before(bookings[j].CheckInDate) })
	return bookings, nil
}

func (r *memBookingRepo) overlapping(roomID uint, checkIn, checkOut time.Time) []models.Booking {
	d := r.s.current()
	var out []models.Booking
	for _, b := range d.bookings {
		if b.DeletedAt.Valid || b.RoomID != roomID || !isActiveStatus(b.Status) {
			continue
		}
		if b.CheckInDate.Before(checkOut) && b.CheckOutDate.After(checkIn) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInDate.Before(out[j].CheckInDate) })
	return out
}

func (r *memBookingRepo) ActiveOverlapping(roomID uint, checkIn, checkOut time.Time) ([]models.Booking, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.overlapping(roomID, checkIn, checkOut), nil
}

func (r *memBookingRepo) ActiveOverlappingForUpdate(roomID uint, checkIn, checkOut time.Time) ([]models.Booking, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.overlapping(roomID, checkIn, checkOut), nil
}

func (r *memBookingRepo) ReferenceExists(ref string) (bool, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, b := range d.bookings {
		if b.BookingReference == ref {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) Update(b *models.Booking) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	if _, ok := d.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	b.UpdatedAt = time.Now()
	stored := *b
	stored.Room = models.Room{}
	d.bookings[b.ID] = stored
	return nil
}

// ---------------------------------------------------------------------
// Conference enquiries
// ---------------------------------------------------------------------

type memEnquiryRepo struct{ s *MemoryStore }

func (r *memEnquiryRepo) Create(e *models.ConferenceEnquiry) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, existing := range d.enquiries {
		if existing.EnquiryReference == e.EnquiryReference {
			return ErrDuplicate
		}
	}
	e.ID = d.id("enquiry")
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	d.enquiries[e.ID] = *e
	return nil
}

func (r *memEnquiryRepo) get(id uint) (*models.ConferenceEnquiry, error) {
	d := r.s.current()
	e, ok := d.enquiries[id]
	if !ok || e.DeletedAt.Valid {
		return nil, ErrNotFound
	}
	out := e
	return &out, nil
}

func (r *memEnquiryRepo) GetByID(id uint) (*models.ConferenceEnquiry, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.get(id)
}

func (r *memEnquiryRepo) GetForUpdate(id uint) (*models.ConferenceEnquiry, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.get(id)
}

func (r *memEnquiryRepo) List() ([]models.ConferenceEnquiry, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	var out []models.ConferenceEnquiry
	for _, e := range d.enquiries {
		if !e.DeletedAt.Valid {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (r *memEnquiryRepo) ReferenceExists(ref string) (bool, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, e := range d.enquiries {
		if e.EnquiryReference == ref {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEnquiryRepo) Update(e *models.ConferenceEnquiry) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	if _, ok := d.enquiries[e.ID]; !ok {
		return ErrNotFound
	}
	e.UpdatedAt = time.Now()
	d.enquiries[e.ID] = *e
	return nil
}

// ---------------------------------------------------------------------
// Payments
// ---------------------------------------------------------------------

type memPaymentRepo struct{ s *MemoryStore }

func (r *memPaymentRepo) Create(p *models.Payment) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, existing := range d.payments {
		if existing.PaymentReference == p.PaymentReference {
			return ErrDuplicate
		}
	}
	p.ID = d.id("payment")
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	d.payments[p.ID] = *p
	return nil
}

func (r *memPaymentRepo) GetByID(id uint) (*models.Payment, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	p, ok := d.payments[id]
	if !ok || p.DeletedAt.Valid {
		return nil, ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *memPaymentRepo) byOwner(ownerType string, ownerID uint, completedOnly bool) []models.Payment {
	d := r.s.current()
	var out []models.Payment
	for _, p := range d.payments {
		if p.DeletedAt.Valid || p.BookingType != ownerType || p.BookingID != ownerID {
			continue
		}
		if completedOnly && p.Status != models.PaymentStatusCompleted {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].PaymentDate.Before(out[j].PaymentDate)
	})
	return out
}

func (r *memPaymentRepo) ListByOwner(ownerType string, ownerID uint) ([]models.Payment, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.byOwner(ownerType, ownerID, false), nil
}

func (r *memPaymentRepo) CompletedByOwner(ownerType string, ownerID uint) ([]models.Payment, error) {
	r.s.lock()
	defer r.s.unlock()
	return r.byOwner(ownerType, ownerID, true), nil
}

func (r *memPaymentRepo) ReferenceExists(ref string) (bool, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, p := range d.payments {
		if p.PaymentReference == ref {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPaymentRepo) ReceiptNumberExists(receipt string) (bool, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, p := range d.payments {
		if p.ReceiptNumber != nil && *p.ReceiptNumber == receipt {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPaymentRepo) Update(p *models.Payment) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	existing, ok := d.payments[p.ID]
	if !ok || existing.DeletedAt.Valid {
		return ErrNotFound
	}
	p.UpdatedAt = time.Now()
	d.payments[p.ID] = *p
	return nil
}

func (r *memPaymentRepo) SoftDelete(id uint) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	p, ok := d.payments[id]
	if !ok || p.DeletedAt.Valid {
		return ErrNotFound
	}
	p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	d.payments[id] = p
	return nil
}

// ---------------------------------------------------------------------
// Blocked dates
// ---------------------------------------------------------------------

type memBlockedDateRepo struct{ s *MemoryStore }

func sameRoom(a, b *uint) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func (r *memBlockedDateRepo) Create(b *models.BlockedDate) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, existing := range d.blocks {
		if sameRoom(existing.RoomID, b.RoomID) && existing.Date.Equal(b.Date) {
			return ErrDuplicate
		}
	}
	b.ID = d.id("block")
	b.CreatedAt = time.Now()
	d.blocks[b.ID] = *b
	return nil
}

func (r *memBlockedDateRepo) Delete(roomID *uint, date time.Time) (bool, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for id, b := range d.blocks {
		if sameRoom(b.RoomID, roomID) && b.Date.Equal(date) {
			delete(d.blocks, id)
			return true, nil
		}
	}
	return false, nil
}

func inRange(date, from, to time.Time) bool {
	return !date.Before(from) && date.Before(to)
}

func (r *memBlockedDateRepo) List(roomID *uint, from, to time.Time) ([]models.BlockedDate, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	var out []models.BlockedDate
	for _, b := range d.blocks {
		if !inRange(b.Date, from, to) {
			continue
		}
		if roomID != nil && b.RoomID != nil && *b.RoomID != *roomID {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memBlockedDateRepo) AnyForRoom(roomID uint, from, to time.Time) (bool, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, b := range d.blocks {
		if !inRange(b.Date, from, to) {
			continue
		}
		if b.RoomID == nil || *b.RoomID == roomID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBlockedDateRepo) Exists(roomID *uint, date time.Time) (bool, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, b := range d.blocks {
		if sameRoom(b.RoomID, roomID) && b.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------

type memSettingRepo struct{ s *MemoryStore }

func (r *memSettingRepo) Get(key string) (string, bool, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	setting, ok := d.settings[key]
	if !ok {
		return "", false, nil
	}
	return setting.Value, true, nil
}

func (r *memSettingRepo) Set(key, value string) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	setting, ok := d.settings[key]
	if !ok {
		setting = models.Setting{ID: d.id("setting"), Key: key, CreatedAt: time.Now()}
	}
	setting.Value = value
	setting.UpdatedAt = time.Now()
	d.settings[key] = setting
	return nil
}

func (r *memSettingRepo) All() ([]models.Setting, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	var out []models.Setting
	for _, s := range d.settings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// ---------------------------------------------------------------------
// Admins / auth
// ---------------------------------------------------------------------

type memAdminRepo struct{ s *MemoryStore }

func (r *memAdminRepo) Create(a *models.Admin) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, existing := range d.admins {
		if strings.EqualFold(existing.Username, a.Username) {
			return ErrDuplicate
		}
	}
	a.ID = d.id("admin")
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	d.admins[a.ID] = *a
	return nil
}

func (r *memAdminRepo) GetByID(id uint) (*models.Admin, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	a, ok := d.admins[id]
	if !ok || a.DeletedAt.Valid {
		return nil, ErrNotFound
	}
	out := a
	return &out, nil
}

func (r *memAdminRepo) GetByUsername(username string) (*models.Admin, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, a := range d.admins {
		if strings.EqualFold(a.Username, username) && !a.DeletedAt.Valid {
			out := a
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memAdminRepo) Count() (int64, error) {
	r.s.lock()
	defer r.s.unlock()
	return int64(len(r.s.current().admins)), nil
}

func (r *memAdminRepo) CreateRole(role *models.Role) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, existing := range d.roles {
		if strings.EqualFold(existing.Name, role.Name) {
			return ErrDuplicate
		}
	}
	role.ID = d.id("role")
	role.CreatedAt = time.Now()
	for i := range role.Permissions {
		role.Permissions[i].RoleID = role.ID
		d.perms = append(d.perms, role.Permissions[i])
	}
	d.roles[role.ID] = *role
	return nil
}

func (r *memAdminRepo) GetRoleByName(name string) (*models.Role, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	for _, role := range d.roles {
		if strings.EqualFold(role.Name, name) {
			out := role
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memAdminRepo) PermissionsForAdmin(adminID uint) ([]string, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	a, ok := d.admins[adminID]
	if !ok || a.RoleID == nil {
		return nil, nil
	}
	var perms []string
	for _, p := range d.perms {
		if p.RoleID == *a.RoleID {
			perms = append(perms, p.Permission)
		}
	}
	return perms, nil
}

func (r *memAdminRepo) CreateToken(t *models.AuthToken) error {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	if _, exists := d.tokens[t.Token]; exists {
		return ErrDuplicate
	}
	t.ID = d.id("token")
	t.CreatedAt = time.Now()
	d.tokens[t.Token] = *t
	return nil
}

func (r *memAdminRepo) GetToken(token string) (*models.AuthToken, error) {
	r.s.lock()
	defer r.s.unlock()
	d := r.s.current()
	t, ok := d.tokens[token]
	if !ok || !t.ExpiresAt.After(time.Now()) {
		return nil, ErrNotFound
	}
	out := t
	return &out, nil
}

func (r *memAdminRepo) DeleteToken(token string) error {
	r.s.lock()
	defer r.s.unlock()
	delete(r.s.current().tokens, token)
	return nil
}
