package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/health-mate/models"
)

// Field name constants used both to scope validation and to report the
// offending field back to the client.
const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"

	FieldSystolic         = "systolic"
	FieldDiastolic        = "diastolic"
	FieldHeartRate        = "heart_rate"
	FieldBloodSugar       = "blood_sugar"
	FieldTemperature      = "temperature"
	FieldWeight           = "weight"
	FieldOxygenSaturation = "oxygen_saturation"
	FieldNotes            = "notes"
	FieldMeasurements     = "measurements"

	FieldTitle   = "title"
	FieldMessage = "message"
	FieldFileID  = "file_id"

	FieldFile        = "file"
	FieldFileName    = "file_name"
	FieldContentType = "content_type"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
	maxNameLength    = 100
	maxTitleLength   = 200
	maxMessageLength = 8000
	maxNotesLength   = 1000
	maxFileNameBytes = 255
)

var acceptedContentTypes = map[string]struct{}{
	models.ContentTypePDF: {},
	"image/jpeg":          {},
	"image/png":           {},
	"image/webp":          {},
	"image/heic":          {},
}

type intRange struct{ min, max int }
type floatRange struct{ min, max float64 }

// Physiologically plausible bounds. Anything outside is a typo.
var (
	systolicRange   = intRange{50, 300}
	diastolicRange  = intRange{20, 200}
	heartRateRange  = intRange{20, 300}
	bloodSugarRange = floatRange{0.5, 2000}
	temperatureRng  = floatRange{25, 45}
	weightRange     = floatRange{0.5, 700}
	oxygenRange     = floatRange{50, 100}
)

// RequestValidator validates the request bodies accepted by the HTTP API.
// Every returned error is a [*FieldError] matching [ErrValidation].
type RequestValidator struct{}

// NewRequestValidator constructs a [RequestValidator] and returns it as the
// [Validator] interface.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the concrete request type. Passing field names
// restricts the check to those fields.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateCredentials(value.Email, value.Password, false, fields...)
	case *models.LoginRequest:
		return v.validateCredentials(value.Email, value.Password, false, fields...)

	case models.SetPasswordRequest:
		return v.validateCredentials(value.Email, value.Password, true, fields...)
	case *models.SetPasswordRequest:
		return v.validateCredentials(value.Email, value.Password, true, fields...)

	case models.GrantRequest:
		return v.validateCredentials(value.Email, "", false, FieldEmail)
	case *models.GrantRequest:
		return v.validateCredentials(value.Email, "", false, FieldEmail)

	case models.Vital:
		return v.validateVital(value, fields...)
	case *models.Vital:
		return v.validateVital(*value, fields...)

	case models.CreateChatRequest:
		return v.validateCreateChat(value, fields...)
	case *models.CreateChatRequest:
		return v.validateCreateChat(*value, fields...)

	case models.SendMessageRequest:
		return validateMessage(value.Message)
	case *models.SendMessageRequest:
		return validateMessage(value.Message)

	case models.RenameChatRequest:
		return validateTitle(value.Title, true)
	case *models.RenameChatRequest:
		return validateTitle(value.Title, true)

	case models.UploadedFile:
		return v.validateUpload(value, fields...)
	case *models.UploadedFile:
		return v.validateUpload(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldName, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			name := strings.TrimSpace(req.Name)
			if name == "" {
				return fieldError(FieldName, ErrEmptyName)
			}
			if utf8.RuneCountInString(name) > maxNameLength {
				return fieldError(FieldName, ErrNameTooLong)
			}
		case FieldEmail, FieldPassword:
			if err := v.validateCredentials(req.Email, req.Password, true, f); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCredentials checks an email/password pair. strict enables the
// password length policy, which only applies when a password is being set;
// login accepts any non-empty password so old accounts keep working.
func (v *RequestValidator) validateCredentials(email, password string, strict bool, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isEmail(email) {
				return fieldError(FieldEmail, ErrInvalidEmail)
			}
		case FieldPassword:
			if password == "" || (strict && utf8.RuneCountInString(password) < minPasswordLength) {
				return fieldError(FieldPassword, ErrPasswordTooShort)
			}
			if len(password) > maxPasswordBytes {
				return fieldError(FieldPassword, ErrPasswordTooLong)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateVital(vital models.Vital, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{
			FieldMeasurements, FieldSystolic, FieldDiastolic, FieldHeartRate, FieldBloodSugar,
			FieldTemperature, FieldWeight, FieldOxygenSaturation, FieldNotes,
		}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldMeasurements:
			if !vital.HasMeasurement() {
				err = fieldError(FieldMeasurements, ErrNoMeasurement)
			}
		case FieldSystolic:
			err = checkInt(FieldSystolic, vital.Systolic, systolicRange)
		case FieldDiastolic:
			err = checkInt(FieldDiastolic, vital.Diastolic, diastolicRange)
		case FieldHeartRate:
			err = checkInt(FieldHeartRate, vital.HeartRate, heartRateRange)
		case FieldBloodSugar:
			err = checkFloat(FieldBloodSugar, vital.BloodSugar, bloodSugarRange)
		case FieldTemperature:
			err = checkFloat(FieldTemperature, vital.Temperature, temperatureRng)
		case FieldWeight:
			err = checkFloat(FieldWeight, vital.Weight, weightRange)
		case FieldOxygenSaturation:
			err = checkFloat(FieldOxygenSaturation, vital.OxygenSaturation, oxygenRange)
		case FieldNotes:
			if utf8.RuneCountInString(vital.Notes) > maxNotesLength {
				err = fieldError(FieldNotes, ErrNotesTooLong)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateCreateChat(req models.CreateChatRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldMessage, FieldFileID}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldTitle:
			err = validateTitle(req.Title, false)
		case FieldMessage:
			err = validateMessage(req.Message)
		case FieldFileID:
			if req.FileID != nil && *req.FileID <= 0 {
				err = fieldError(FieldFileID, ErrInvalidID)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *RequestValidator) validateUpload(file models.UploadedFile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFile, FieldFileName, FieldContentType}
	}

	for _, f := range fields {
		switch f {
		case FieldFile:
			if len(file.Body) == 0 {
				return fieldError(FieldFile, ErrEmptyFile)
			}
		case FieldFileName:
			name := strings.TrimSpace(file.FileName)
			if name == "" || len(name) > maxFileNameBytes {
				return fieldError(FieldFileName, ErrEmptyFileName)
			}
		case FieldContentType:
			if _, ok := acceptedContentTypes[file.ContentType]; !ok {
				return fieldError(FieldContentType, ErrUnsupportedContent)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateTitle(title string, required bool) error {
	title = strings.TrimSpace(title)
	if required && title == "" {
		return fieldError(FieldTitle, ErrEmptyTitle)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fieldError(FieldTitle, ErrTitleTooLong)
	}
	return nil
}

func validateMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fieldError(FieldMessage, ErrEmptyMessage)
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return fieldError(FieldMessage, ErrMessageTooLong)
	}
	return nil
}

func checkInt(field string, value *int, r intRange) error {
	if value != nil && (*value < r.min || *value > r.max) {
		return fieldError(field, ErrOutOfRange)
	}
	return nil
}

func checkFloat(field string, value *float64, r floatRange) error {
	if value != nil && (*value < r.min || *value > r.max) {
		return fieldError(field, ErrOutOfRange)
	}
	return nil
}

// isEmail accepts a bare address only, rejecting display-name forms such
// as "Ann <ann@example.com>".
func isEmail(email string) bool {
	if email == "" || strings.TrimSpace(email) != email {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
