package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuonghuynh11/HealthAppAPI/config"
	"github.com/tuonghuynh11/HealthAppAPI/routes"
	"github.com/tuonghuynh11/HealthAppAPI/services"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/cors"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns only after the server stopped and every resource was released.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	loc := cfg.Location()

	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	mongoClient, mongoDB, err := config.InitMongo(ctx, cfg)
	if err != nil {
		return fmt.Errorf("mongo: %w", err)
	}
	defer mongoClient.Disconnect(context.Background())
	chatStore := services.NewMongoChatStore(mongoDB)
	if err := chatStore.EnsureIndexes(ctx); err != nil {
		log.Printf("mongo indexes: %v", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return fmt.Errorf("aws config: %w", err)
	}
	storage, err := utils.NewS3Storage(ctx, cfg.S3Region, cfg.S3Bucket, cfg.CloudFrontURL)
	if err != nil {
		return fmt.Errorf("s3: %w", err)
	}
	moderator, err := utils.NewRekognitionModerator(ctx, cfg.AWSRegion)
	if err != nil {
		return fmt.Errorf("rekognition: %w", err)
	}
	var mailer utils.Mailer = utils.LogMailer{}
	if cfg.SESEmail != "" {
		ses, err := utils.NewSESMailer(ctx, cfg.AWSRegion, cfg.SESEmail)
		if err != nil {
			return fmt.Errorf("ses: %w", err)
		}
		mailer = ses
	}

	tokens := utils.NewTokenManager(map[utils.TokenKind]utils.TokenConfig{
		utils.AccessToken:         {Secret: cfg.AccessTokenSecret, TTL: cfg.AccessTokenExpiresIn},
		utils.RefreshToken:        {Secret: cfg.RefreshTokenSecret, TTL: cfg.RefreshTokenExpiresIn},
		utils.EmailVerifyToken:    {Secret: cfg.EmailVerifyTokenSecret, TTL: cfg.EmailVerifyTokenExpiresIn},
		utils.ForgotPasswordToken: {Secret: cfg.ForgotPasswordTokenSecret, TTL: cfg.ForgotPasswordTokenExpires},
	})

	hub := services.NewRealtimeHub()
	push := services.NewPushService(db, sns.NewFromConfig(awsCfg), cfg.SNSFCMArn)
	notifications := services.NewNotificationService(db, hub, push)
	users := services.NewUserService(db, storage)
	dishes := services.NewDishService(db)
	plans := services.NewWorkoutPlanService(db)

	deps := routes.Deps{
		Tokens:         tokens,
		Hub:            hub,
		Origins:        cfg.CORSOrigins,
		Auth:           services.NewAuthService(db, tokens, mailer, cfg.ClientURL),
		Users:          users,
		Tracking:       services.NewHealthTrackingService(db, loc),
		Water:          services.NewWaterService(db),
		Push:           push,
		Exercises:      services.NewExerciseService(db),
		Ingredients:    services.NewIngredientService(db),
		Dishes:         dishes,
		Meals:          services.NewMealService(db),
		Sets:           services.NewSetService(db),
		Plans:          plans,
		PlanDetails:    services.NewWorkoutPlanDetailService(db, plans),
		Challenges:     services.NewChallengeService(db, notifications),
		Reports:        services.NewReportService(db, notifications),
		Contacts:       services.NewContactService(db),
		Chats:          services.NewChatService(chatStore, db, hub, cfg.AdminEmail),
		Media:          services.NewMediaService(storage, moderator),
		Notifications:  notifications,
		Statistics:     services.NewStatisticsService(db),
		Recommendation: services.NewRecommendationService(db, users, dishes),
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	job := services.NewTrackingJob(db, loc)
	if _, err := job.Schedule(scheduler, cfg.CronTrackingSpec); err != nil {
		return fmt.Errorf("schedule tracking job: %w", err)
	}
	if n, err := job.Run(ctx); err != nil {
		log.Printf("tracking job: %v", err)
	} else {
		log.Printf("tracking job: %d trackings created at startup", n)
	}
	scheduler.Start()

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}).Handler(routes.SetupRouter(deps))

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("scheduler shutdown: %v", err)
		}
	})
}

// serve runs srv until ctx ends or the listener fails. Either way the server
// is shut down and onStop runs before serve returns the listener error.
func serve(ctx context.Context, srv *http.Server, onStop func()) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("server: %w", err)
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
	}
	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	onStop()
	return runErr
}
