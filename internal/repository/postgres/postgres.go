package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/nattapongw/calendar-api/internal/repository"
)

type eventRepository struct {
	db *sqlx.DB
}

type roleRepository struct {
	db *sqlx.DB
}

type attendanceRepository struct {
	db *sqlx.DB
}

type auditRepository struct {
	BaseRepository
}

type notificationRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func NewRoleRepository(db *sqlx.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func NewAttendanceRepository(db *sqlx.DB) repository.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func NewAuditRepository(base BaseRepository) repository.AuditRepository {
	return &auditRepository{base}
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}
