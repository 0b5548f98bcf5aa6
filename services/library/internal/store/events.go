package store

// Entity names used in change event subjects.
const (
	EntityPerson = "person"
	EntityMovie  = "movie"
	EntityTvShow = "tv_show"
)

const (
	actionCreated = "created"
	actionUpdated = "updated"
	actionDeleted = "deleted"
)

// EventSubject builds the subject a change event is published under,
// e.g. "library.movie.deleted".
func EventSubject(entity, action string) string {
	return "library." + entity + "." + action
}

// ChangeEvent is the payload written to the outbox for every mutation.
type ChangeEvent struct {
	IDs []int64 `json:"ids"`
}
