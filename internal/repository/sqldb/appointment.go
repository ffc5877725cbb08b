package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
)

const (
	countSlotQuery = `SELECT COUNT(*) FROM appointments WHERE date = ? AND time = ?`

	insertAppointmentQuery = `INSERT INTO appointments (name, age, phone, doctor, date, time, department) VALUES (?, ?, ?, ?, ?, ?, ?)`

	listAppointmentsQuery = `SELECT id, name, age, department, doctor, phone, date, time FROM appointments ORDER BY id`

	deleteAppointmentQuery = `DELETE FROM appointments WHERE id = ?`

	// MySQL cannot reference the target table in a DELETE subquery but accepts LIMIT;
	// PostgreSQL is the other way round.
	deleteByPhoneMySQL    = `DELETE FROM appointments WHERE phone = ? LIMIT 1`
	deleteByPhonePostgres = `DELETE FROM appointments WHERE id = (SELECT id FROM appointments WHERE phone = ? ORDER BY id LIMIT 1)`
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *appointmentRepository) CountBySlot(ctx context.Context, slot model.Slot) (int, error) {
	return countSlot(ctx, r.db, slot)
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	return insertAppointment(ctx, r.db, appointment)
}

func (r *appointmentRepository) CreateIfSlotAvailable(ctx context.Context, appointment *model.Appointment, capacity int) (bool, error) {
	slot := model.Slot{Date: appointment.Date, Time: appointment.Time.String}
	booked := false

	err := r.WithTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(tx *sqlx.Tx) error {
		count, err := countSlot(ctx, tx, slot)
		if err != nil {
			return err
		}
		if count >= capacity {
			return nil
		}
		if err := insertAppointment(ctx, tx, appointment); err != nil {
			return err
		}
		booked = true
		return nil
	})
	if err != nil {
		return false, wrapTxError(err, "failed to book slot")
	}

	return booked, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, r.db.Rebind(listAppointmentsQuery)); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Delete does not report whether the row existed.
func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(deleteAppointmentQuery), id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) DeleteOneByPhone(ctx context.Context, phone string) (int64, error) {
	query := deleteByPhonePostgres
	if r.db.DriverName() == DriverMySQL {
		query = deleteByPhoneMySQL
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), phone)
	if err != nil {
		return 0, fmt.Errorf("failed to delete appointment by phone: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func countSlot(ctx context.Context, q sqlx.ExtContext, slot model.Slot) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, q.Rebind(countSlotQuery), slot.Date, slot.Time); err != nil {
		return 0, fmt.Errorf("failed to count slot appointments: %w", err)
	}
	return count, nil
}

func insertAppointment(ctx context.Context, e sqlx.ExtContext, a *model.Appointment) error {
	_, err := e.ExecContext(ctx, e.Rebind(insertAppointmentQuery),
		a.Name,
		a.Age,
		a.Phone,
		a.Doctor,
		a.Date,
		a.Time,
		a.Department,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}
