package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/service"
	"github.com/example/media-library/services/library/internal/store"
)

const personWhat = "person"

// CreatePerson handles POST /v1/persons
func CreatePerson(svc *service.PersonService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		var req personRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		p, err := svc.Create(r.Context(), req.draft())
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeCreated(w, r, p.ID, toPerson(p))
	}
}

// ListPersons handles GET /v1/persons. Filters, first match wins: ids, any
// of the three name patterns, date-of-birth, date-of-death.
func ListPersons(svc *service.PersonService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		ids, hasIDs, ok := queryIDs(w, r, rid)
		if !ok {
			return
		}
		dob, hasDOB, ok := queryDate(w, r, rid, "date-of-birth")
		if !ok {
			return
		}
		dod, hasDOD, ok := queryDate(w, r, rid, "date-of-death")
		if !ok {
			return
		}
		var q store.NameQuery
		if v, has := queryString(r, "first-name"); has {
			q.First = &v
		}
		if v, has := queryString(r, "middle-name"); has {
			q.Middle = &v
		}
		if v, has := queryString(r, "last-name"); has {
			q.Last = &v
		}

		var (
			out []store.Person
			err error
		)
		switch {
		case hasIDs:
			out, err = svc.GetAllWithIDs(r.Context(), ids)
		case !q.Empty():
			out, err = svc.GetAllByName(r.Context(), q)
		case hasDOB:
			out, err = svc.GetAllByDateOfBirth(r.Context(), dob)
		case hasDOD:
			out, err = svc.GetAllByDateOfDeath(r.Context(), dod)
		default:
			out, err = svc.GetAll(r.Context())
		}
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		writeList(w, rid, personWhat, mapAll(out, toPerson))
	}
}

// GetPerson handles GET /v1/persons/{id}
func GetPerson(svc *service.PersonService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		p, found, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, personWhat, id)
			return
		}
		writeJSONOK(w, toPerson(p))
	}
}

// UpdatePerson handles PUT /v1/persons/{id}
func UpdatePerson(svc *service.PersonService, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := requestID(r)
		id, ok := pathID(w, r, rid)
		if !ok {
			return
		}
		var req personRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		_, found, err := svc.Update(r.Context(), id, req.draft())
		if err != nil {
			writeServiceError(w, log, rid, err)
			return
		}
		if !found {
			notFound(w, rid, personWhat, id)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
