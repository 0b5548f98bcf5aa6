package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/service"
)

// CreateClassification handles POST /v1/{ratings,genres,languages}
func CreateClassification(svc *service.ClassificationService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		var req classificationRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		c, err := svc.Create(r.Context(), req.draft())
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeCreated(w, r, c.ID, c)
	}
}

// ListClassifications handles GET /v1/{kind} with optional ?ids=. ?name= answers
// with the single classification of that exact name.
func ListClassifications(svc *service.ClassificationService, log *zap.Logger) http.HandlerFunc {
	what := string(svc.Kind())
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		ids, hasIDs, ok := queryIDs(w, r, rid)
		if !ok {
			return
		}

		if name, hasName := queryString(r, "name"); hasName && !hasIDs {
			c, found, err := svc.GetByName(r.Context(), name)
			if err != nil {
				writeServiceError(w, log, rid, err)
				return
			}
			writeOne(w, rid, what, c, found)
			return
		}

		var (
			out []classificationResponse
			err error
		)
		if hasIDs {
			out, err = svc.GetAllWithIDs(r.Context(), ids)
		} else {
			out, err = svc.GetAll(r.Context())
		}
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeList(w, rid, what, out)
	}
}

// GetClassification handles GET /v1/{kind}/{id}
func GetClassification(svc *service.ClassificationService, log *zap.Logger) http.HandlerFunc {
	what := string(svc.Kind())
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		c, found, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, what, id)
			return
		}
		writeJSONOK(w, c)
	}
}

// HeadClassification handles HEAD /v1/{kind}/{id}
func HeadClassification(svc *service.ClassificationService, log *zap.Logger) http.HandlerFunc {
	return existsHandler(svc.Exists, log)
}

// UpdateClassification handles PUT /v1/{kind}/{id}
func UpdateClassification(svc *service.ClassificationService, log *zap.Logger) http.HandlerFunc {
	what := string(svc.Kind())
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		var req classificationRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		_, found, err := svc.Update(r.Context(), id, req.draft())
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, what, id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteClassification handles DELETE /v1/{kind}/{id}
func DeleteClassification(svc *service.ClassificationService, log *zap.Logger) http.HandlerFunc {
	return deleteOneHandler(svc.DeleteByID, string(svc.Kind()), log)
}

// DeleteClassifications handles DELETE /v1/{kind}, optionally limited by ?ids=.
func DeleteClassifications(svc *service.ClassificationService, log *zap.Logger) http.HandlerFunc {
	return deleteManyHandler(svc.DeleteAllWithIDs, svc.DeleteAll, string(svc.Kind()), log)
}
