package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"videoforge/internal/http/handlers"
	"videoforge/internal/middleware"
)

// NewRouter assembles the API routes and middleware chain. The media
// directory is served statically under /uploads so recorded artifact paths
// resolve to downloadable files.
func NewRouter(app *handlers.App, logger zerolog.Logger, countryLookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS,
		middleware.Locale(countryLookup),
		middleware.Logger(logger),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", app.Health)

		r.Post("/add_text", app.AddText)
		r.Post("/upload_video", app.UploadVideo)
		r.Get("/load_frame", app.LoadFrame)
		r.Post("/create_video", app.CreateVideo)
		r.Post("/concatenate_videos", app.ConcatenateVideos)
		r.Get("/library", app.Library)
		r.Post("/upload_to_youtube", app.UploadToYouTube)
		r.Post("/save_video", app.SaveVideo)
	})

	if dir := app.Store.Dir(); dir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return r
}
