package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"time"

	"github.com/bosco250/uruti-schedule-service/internal/config"
	"github.com/bosco250/uruti-schedule-service/internal/core/domain"
	"github.com/bosco250/uruti-schedule-service/internal/core/ports/out"
)

type SalonAdapter struct {
	client  *http.Client
	baseURL string
	token   string
	logger  out.LoggerPort
}

func NewSalonAdapter(cfg *config.Config, logger out.LoggerPort) *SalonAdapter {
	return &SalonAdapter{
		client:  &http.Client{Timeout: time.Duration(cfg.SalonAPI.TimeoutSeconds) * time.Second},
		baseURL: cfg.SalonAPI.URL,
		token:   cfg.SalonAPI.Token,
		logger:  logger,
	}
}

func (a *SalonAdapter) FetchAppointments(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Appointment, error) {
	query := nurl.Values{}
	query.Set("employeeId", employeeID)
	query.Set("startDate", from.Format(time.RFC3339))
	query.Set("endDate", to.Format(time.RFC3339))

	body, err := a.get(ctx, "/appointments", query)
	if err != nil {
		a.logger.Error("salonapi.appointments.fetch_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	appointments, err := decodeList[domain.Appointment](body)
	if err != nil {
		a.logger.Error("salonapi.appointments.decode_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	a.logger.Debug("salonapi.appointments.fetch_success", out.LogFields{
		"employeeId": employeeID,
		"count":      len(appointments),
	})

	return appointments, nil
}

func (a *SalonAdapter) FetchSlots(ctx context.Context, employeeID string, date time.Time, durationMinutes int, serviceID string) ([]domain.TimeSlot, error) {
	query := nurl.Values{}
	query.Set("employeeId", employeeID)
	query.Set("date", date.Format("2006-01-02"))
	query.Set("duration", fmt.Sprintf("%d", durationMinutes))
	if serviceID != "" {
		query.Set("serviceId", serviceID)
	}

	body, err := a.get(ctx, "/appointments/slots", query)
	if err != nil {
		a.logger.Error("salonapi.slots.fetch_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	rawSlots, err := decodeList[rawSlot](body)
	if err != nil {
		a.logger.Error("salonapi.slots.decode_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	slots := make([]domain.TimeSlot, 0, len(rawSlots))
	for _, raw := range rawSlots {
		slots = append(slots, raw.toDomain(date))
	}

	a.logger.Debug("salonapi.slots.fetch_success", out.LogFields{
		"employeeId": employeeID,
		"count":      len(slots),
	})

	return slots, nil
}

func (a *SalonAdapter) ValidateBooking(ctx context.Context, req domain.BookingRequest) (*domain.ValidationResult, error) {
	payload := validateBookingPayload{
		EmployeeID:           req.EmployeeID,
		ServiceID:            req.ServiceID,
		StartTime:            req.StartTime.Format(time.RFC3339),
		EndTime:              req.EndTime.Format(time.RFC3339),
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	}

	body, err := a.post(ctx, "/appointments/validate-booking", payload)
	if err != nil {
		a.logger.Error("salonapi.validate_booking.failed", out.LogFields{
			"employeeId": req.EmployeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	raw, err := decodeObject[rawValidation](body)
	if err != nil {
		a.logger.Error("salonapi.validate_booking.decode_failed", out.LogFields{
			"employeeId": req.EmployeeID,
			"error":      err.Error(),
		})
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("empty validation response")
	}

	return raw.toDomain(req.StartTime), nil
}

func (a *SalonAdapter) FetchAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceLog, error) {
	query := nurl.Values{}
	query.Set("employeeId", employeeID)
	query.Set("startDate", from.Format(time.RFC3339))
	query.Set("endDate", to.Format(time.RFC3339))

	body, err := a.get(ctx, "/attendance/logs", query)
	if err != nil {
		a.logger.Error("salonapi.attendance.fetch_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	logs, err := decodeList[domain.AttendanceLog](body)
	if err != nil {
		a.logger.Error("salonapi.attendance.decode_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	return logs, nil
}

func (a *SalonAdapter) FetchCurrentAttendance(ctx context.Context, employeeID string) (*domain.AttendanceLog, error) {
	query := nurl.Values{}
	query.Set("employeeId", employeeID)

	body, err := a.get(ctx, "/attendance/current", query)
	if err != nil {
		// No open attendance is a normal answer, not a failure
		if err == errNotFound {
			return nil, nil
		}
		a.logger.Error("salonapi.current_attendance.fetch_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	return decodeObject[domain.AttendanceLog](body)
}

func (a *SalonAdapter) FetchSales(ctx context.Context, employeeID string, from, to time.Time) ([]domain.Sale, error) {
	query := nurl.Values{}
	query.Set("employeeId", employeeID)
	query.Set("startDate", from.Format(time.RFC3339))
	query.Set("endDate", to.Format(time.RFC3339))

	body, err := a.get(ctx, "/sales", query)
	if err != nil {
		a.logger.Error("salonapi.sales.fetch_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	sales, err := decodeList[domain.Sale](body)
	if err != nil {
		a.logger.Error("salonapi.sales.decode_failed", out.LogFields{
			"employeeId": employeeID,
			"error":      err.Error(),
		})
		return nil, err
	}

	return sales, nil
}

var errNotFound = fmt.Errorf("not found")

func (a *SalonAdapter) get(ctx context.Context, path string, query nurl.Values) ([]byte, error) {
	url := a.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", "Bearer "+a.token)

	return a.do(req)
}

func (a *SalonAdapter) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := a.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	return a.do(req)
}

func (a *SalonAdapter) do(req *http.Request) ([]byte, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
