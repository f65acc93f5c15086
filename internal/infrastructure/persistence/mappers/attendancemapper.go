package mappers

import (
	"f3manager/internal/domain/attendance"
	"f3manager/internal/infrastructure/persistence/models"
)

type AttendanceMapper struct{}

func NewAttendanceMapper() *AttendanceMapper {
	return &AttendanceMapper{}
}

func (m *AttendanceMapper) ToEntity(model *models.AttendanceModel) (*attendance.Attendance, error) {
	if model == nil {
		return nil, nil
	}
	return attendance.ReconstructAttendance(
		model.ID,
		model.MemberID,
		model.SubscriptionID,
		model.CheckInTime.UTC(),
		utcPtr(model.CheckOutTime),
		fromDate(model.Date),
		model.DurationMinutes,
		model.Notes,
		model.CreatedAt.UTC(),
	)
}

func (m *AttendanceMapper) ToModel(a *attendance.Attendance) *models.AttendanceModel {
	return &models.AttendanceModel{
		ID:              a.ID(),
		MemberID:        a.MemberID(),
		SubscriptionID:  a.SubscriptionID(),
		CheckInTime:     a.CheckInTime().UTC(),
		CheckOutTime:    utcPtr(a.CheckOutTime()),
		Date:            toDate(a.Date()),
		DurationMinutes: a.DurationMinutes(),
		Notes:           a.Notes(),
		CreatedAt:       a.CreatedAt(),
	}
}

func (m *AttendanceMapper) ToEntities(rows []*models.AttendanceModel) ([]*attendance.Attendance, error) {
	entities := make([]*attendance.Attendance, 0, len(rows))
	for _, row := range rows {
		entity, err := m.ToEntity(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
