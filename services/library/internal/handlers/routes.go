package handlers

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/media-library/services/library/internal/service"
)

// Routes mounts the /v1 catalog API on r.
func Routes(r chi.Router, lib *service.Library, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.Route("/v1", func(r chi.Router) {
		classificationRoutes(r, "/ratings", lib.Ratings, log)
		classificationRoutes(r, "/genres", lib.Genres, log)
		classificationRoutes(r, "/languages", lib.Languages, log)

		r.Route("/persons", func(r chi.Router) {
			r.Post("/", CreatePerson(lib.Persons, log))
			r.Get("/", ListPersons(lib.Persons, log))
			r.Delete("/", deleteManyHandler(lib.Persons.DeleteAllWithIDs, lib.Persons.DeleteAll, personWhat, log))
			r.Get("/{id}", GetPerson(lib.Persons, log))
			r.Head("/{id}", existsHandler(lib.Persons.Exists, log))
			r.Put("/{id}", UpdatePerson(lib.Persons, log))
			r.Delete("/{id}", deleteOneHandler(lib.Persons.DeleteByID, personWhat, log))
		})

		r.Route("/movies", func(r chi.Router) {
			r.Post("/", CreateMovie(lib.Movies, log))
			r.Get("/", ListMovies(lib.Movies, log))
			r.Delete("/", deleteManyHandler(lib.Movies.DeleteAllWithIDs, lib.Movies.DeleteAll, movieWhat, log))
			r.Get("/{id}", GetMovie(lib.Movies, log))
			r.Head("/{id}", existsHandler(lib.Movies.Exists, log))
			r.Put("/{id}", UpdateMovie(lib.Movies, log))
			r.Delete("/{id}", deleteOneHandler(lib.Movies.DeleteByID, movieWhat, log))
		})

		r.Route("/tv-shows", func(r chi.Router) {
			r.Post("/", CreateTvShow(lib.TvShows, log))
			r.Get("/", ListTvShows(lib.TvShows, log))
			r.Delete("/", deleteManyHandler(lib.TvShows.DeleteAllWithIDs, lib.TvShows.DeleteAll, tvShowWhat, log))
			r.Get("/{id}", GetTvShow(lib.TvShows, log))
			r.Head("/{id}", existsHandler(lib.TvShows.Exists, log))
			r.Put("/{id}", UpdateTvShow(lib.TvShows, log))
			r.Delete("/{id}", deleteOneHandler(lib.TvShows.DeleteByID, tvShowWhat, log))
		})
	})
}

func classificationRoutes(r chi.Router, path string, svc *service.ClassificationService, log *zap.Logger) {
	r.Route(path, func(r chi.Router) {
		r.Post("/", CreateClassification(svc, log))
		r.Get("/", ListClassifications(svc, log))
		r.Delete("/", DeleteClassifications(svc, log))
		r.Get("/{id}", GetClassification(svc, log))
		r.Head("/{id}", HeadClassification(svc, log))
		r.Put("/{id}", UpdateClassification(svc, log))
		r.Delete("/{id}", DeleteClassification(svc, log))
	})
}
