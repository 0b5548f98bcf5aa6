package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/example/media-library/internal/platform/api"
)

// writeServiceError maps a service error onto the JSON error envelope using
// the gRPC status it carries. Errors without one are logged and reported as 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, rid string, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	st, ok := status.FromError(err)
	if !ok {
		log.Error("request failed", zap.String("request_id", rid), zap.Error(err))
		api.Internal(w, rid)
		return
	}

	code := api.CodeInternal
	details := map[string]any{}
	for _, d := range st.Details() {
		switch v := d.(type) {
		case *errdetails.ErrorInfo:
			if v.GetReason() != "" {
				code = v.GetReason()
			}
		case *errdetails.BadRequest:
			for _, fv := range v.GetFieldViolations() {
				if fv.GetField() != "" {
					details[fv.GetField()] = fv.GetDescription()
				}
			}
		}
	}
	if len(details) == 0 {
		details = nil
	}

	switch st.Code() {
	case codes.InvalidArgument, codes.FailedPrecondition:
		api.BadRequest(w, code, st.Message(), rid, details)
	case codes.NotFound:
		api.NotFound(w, code, st.Message(), rid)
	case codes.AlreadyExists:
		api.Conflict(w, code, st.Message(), rid, details)
	default:
		log.Error("request failed", zap.String("request_id", rid), zap.Error(err))
		api.Internal(w, rid)
	}
}
