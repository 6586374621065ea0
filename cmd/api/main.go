// @title LEFI digital brain API
// @description API for the LEFI personal productivity app
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/lefi/digital-brain/internal/api"
	"github.com/lefi/digital-brain/internal/repository"
	"github.com/lefi/digital-brain/internal/service"
	"github.com/lefi/digital-brain/pkg/cleanup"
	"github.com/lefi/digital-brain/pkg/config"
	jwtservice "github.com/lefi/digital-brain/pkg/jwt_service"
	"github.com/lefi/digital-brain/pkg/presentation"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	conn := repository.NewPool(&dbCfg)

	blocksRepo := repository.NewBlocksRepo(conn)
	profilesRepo := repository.NewProfilesRepo(conn)

	serv := api.New(&api.ServicesList{
		UserService:       service.NewUserService(repository.NewUsersRepo(conn)),
		BlocksService:     service.NewBlocksService(blocksRepo),
		CategoriesService: service.NewCategoriesService(repository.NewCategoriesRepo(conn)),
		InboxService:      service.NewInboxService(repository.NewInboxRepo(conn)),
		RoutineService:    service.NewRoutineService(repository.NewRoutineRepo(conn), blocksRepo),
		NeedsService:      service.NewNeedsService(repository.NewNeedsRepo(conn)),
		FriendsService:    service.NewFriendsService(repository.NewFriendshipsRepo(conn), profilesRepo),
		ProfileService:    service.NewProfileService(profilesRepo),
		SleepService:      service.NewSleepService(repository.NewSleepRepo(conn)),
		AssistantService:  service.NewAssistantService(blocksRepo, presentation.Default()),
		JwtService:        jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
