package service

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mmynk/splitter/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so errors match what the client sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest checks the validate tags of a request message and turns
// the first failure into a models.ValidationError.
func validateRequest(msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &models.ValidationError{Reason: err.Error()}
	}
	fe := fieldErrs[0]
	reason := "failed " + fe.Tag()
	if fe.Param() != "" {
		reason += "=" + fe.Param()
	}
	return &models.ValidationError{Field: trimRoot(fe.Namespace()), Reason: reason}
}

// trimRoot drops the struct type name validator puts in front of a namespace.
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// toConnectError maps domain errors to connect codes. Validation errors carry
// a structured detail naming the offending field and id.
func toConnectError(op string, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		slog.Warn(op+" rejected", "field", verr.Field, "id", verr.ID, "reason", verr.Reason)
		cerr := connect.NewError(connect.CodeInvalidArgument, err)
		if detail, derr := validationDetail(verr); derr == nil {
			cerr.AddDetail(detail)
		} else {
			slog.Error("Failed to build error detail", "error", derr)
		}
		return cerr
	case errors.Is(err, models.ErrValidation):
		slog.Warn(op+" rejected", "error", err)
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, models.ErrNotFound):
		slog.Warn(op+" not found", "error", err)
		return connect.NewError(connect.CodeNotFound, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}

func validationDetail(verr *models.ValidationError) (*connect.ErrorDetail, error) {
	s, err := structpb.NewStruct(map[string]any{
		"field":  verr.Field,
		"id":     verr.ID,
		"reason": verr.Reason,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewErrorDetail(s)
}

// ValidationDetail extracts the field, id and reason attached to an
// InvalidArgument error, if any.
func ValidationDetail(err error) (field, id, reason string, ok bool) {
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		return "", "", "", false
	}
	for _, d := range cerr.Details() {
		msg, derr := d.Value()
		if derr != nil {
			continue
		}
		s, isStruct := msg.(*structpb.Struct)
		if !isStruct {
			continue
		}
		f := s.GetFields()
		return f["field"].GetStringValue(), f["id"].GetStringValue(), f["reason"].GetStringValue(), true
	}
	return "", "", "", false
}
