package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(h.withCORS)
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.welcome)
	router.Get("/api/version/", h.getServerVersion)

	router.Route("/api/users", func(r chi.Router) {
		// routes without authorization
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Get("/logout", h.logout)
		r.Get("/loggedin", h.loggedIn)
		r.Post("/forgotpassword", h.forgotPassword)
		r.Put("/resetpassword/{resetToken}", h.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/getuser", h.getUser)
			r.Patch("/updateuser", h.updateUser)
			r.Patch("/changepassword", h.changePassword)
		})
	})

	router.Route("/api/products", func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/", h.createProduct)
		r.Get("/", h.listProducts)
		r.Get("/{id}", h.getProduct)
		r.Patch("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})

	router.With(h.auth).Post("/api/contact", h.contactUs)

	router.MethodNotAllowed(CheckHTTPMethod)

	return router
}
