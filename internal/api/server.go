package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lefi/digital-brain/internal/service"
)

type Server struct {
	mx                *chi.Mux
	userService       service.UserServiceI
	blocksService     service.BlocksServiceI
	categoriesService service.CategoriesServiceI
	inboxService      service.InboxServiceI
	routineService    service.RoutineServiceI
	needsService      service.NeedsServiceI
	friendsService    service.FriendsServiceI
	profileService    service.ProfileServiceI
	sleepService      service.SleepServiceI
	assistantService  service.AssistantServiceI
	jwtService        JWTServiceI
}

type ServicesList struct {
	UserService       service.UserServiceI
	BlocksService     service.BlocksServiceI
	CategoriesService service.CategoriesServiceI
	InboxService      service.InboxServiceI
	RoutineService    service.RoutineServiceI
	NeedsService      service.NeedsServiceI
	FriendsService    service.FriendsServiceI
	ProfileService    service.ProfileServiceI
	SleepService      service.SleepServiceI
	AssistantService  service.AssistantServiceI
	JwtService        JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:                chi.NewMux(),
		userService:       servicesOptions.UserService,
		blocksService:     servicesOptions.BlocksService,
		categoriesService: servicesOptions.CategoriesService,
		inboxService:      servicesOptions.InboxService,
		routineService:    servicesOptions.RoutineService,
		needsService:      servicesOptions.NeedsService,
		friendsService:    servicesOptions.FriendsService,
		profileService:    servicesOptions.ProfileService,
		sleepService:      servicesOptions.SleepService,
		assistantService:  servicesOptions.AssistantService,
		jwtService:        servicesOptions.JwtService,
	}
}

func (s *Server) Run(addr string) error {
	s.mountRoutes()
	return http.ListenAndServe(addr, s.mx)
}

// Handler exposes the mounted router, used by httptest servers.
func (s *Server) Handler() http.Handler {
	s.mountRoutes()
	return s.mx
}

func (s *Server) mountRoutes() {
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Use(s.RequestIDMiddleware)
		r.Use(s.SettingUpLoggerMiddleware)

		r.Post("/register", s.Register)
		r.Post("/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)

			r.Route("/blocks", func(r chi.Router) {
				r.Post("/", s.CreateBlock)
				r.Get("/", s.GetBlocks)
				r.Get("/{id}", s.GetBlock)
				r.Patch("/{id}", s.UpdateBlock)
				r.Delete("/{id}", s.DeleteBlock)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", s.GetCategories)
				r.Post("/", s.CreateCategory)
				r.Patch("/{id}", s.UpdateCategory)
				r.Delete("/{id}", s.DeleteCategory)
			})

			r.Route("/inbox", func(r chi.Router) {
				r.Post("/", s.CaptureNote)
				r.Get("/", s.GetInbox)
				r.Delete("/{id}", s.DeleteNote)
				r.Post("/{id}/process", s.ProcessNote)
			})

			r.Route("/routine", func(r chi.Router) {
				r.Post("/", s.CreateRoutineEntry)
				r.Get("/", s.GetRoutine)
				r.Patch("/{id}", s.UpdateRoutineEntry)
				r.Delete("/{id}", s.DeleteRoutineEntry)
				r.Post("/materialize", s.MaterializeRoutine)
			})

			r.Route("/needs", func(r chi.Router) {
				r.Post("/", s.CreateNeed)
				r.Get("/", s.GetNeeds)
				r.Delete("/{id}", s.DeleteNeed)
			})

			r.Route("/friends", func(r chi.Router) {
				r.Get("/", s.GetFriends)
				r.Get("/requests", s.GetFriendRequests)
				r.Post("/requests", s.SendFriendRequest)
				r.Put("/requests/{id}/accept", s.AcceptFriendRequest)
				r.Delete("/requests/{id}", s.RejectFriendRequest)
				r.Delete("/{id}", s.RemoveFriend)
				r.Put("/{id}/block", s.BlockFriend)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", s.GetProfile)
				r.Patch("/", s.UpdateProfile)
				r.Put("/onboarding", s.CompleteOnboarding)
			})
			r.Get("/profiles/search", s.SearchProfile)

			r.Route("/sleep", func(r chi.Router) {
				r.Get("/", s.GetSleepSettings)
				r.Put("/", s.SaveSleepSettings)
			})

			r.Post("/assistant/plan", s.PlanDay)
		})
	})
}
