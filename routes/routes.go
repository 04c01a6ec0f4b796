package routes

import (
	"github.com/tuonghuynh11/HealthAppAPI/controllers"
	"github.com/tuonghuynh11/HealthAppAPI/middlewares"
	"github.com/tuonghuynh11/HealthAppAPI/services"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/gin-gonic/gin"
)

// Deps holds everything the router wires into controllers.
type Deps struct {
	Tokens  *utils.TokenManager
	Hub     *services.RealtimeHub
	Origins []string // browser origins allowed to open /ws

	Auth           *services.AuthService
	Users          *services.UserService
	Tracking       *services.HealthTrackingService
	Water          *services.WaterService
	Push           *services.PushService
	Exercises      *services.ExerciseService
	Ingredients    *services.IngredientService
	Dishes         *services.DishService
	Meals          *services.MealService
	Sets           *services.SetService
	Plans          *services.WorkoutPlanService
	PlanDetails    *services.WorkoutPlanDetailService
	Challenges     *services.ChallengeService
	Reports        *services.ReportService
	Contacts       *services.ContactService
	Chats          *services.ChatService
	Media          *services.MediaService
	Notifications  *services.NotificationService
	Statistics     *services.StatisticsService
	Recommendation *services.RecommendationService
}

func SetupRouter(d Deps) *gin.Engine {
	controllers.RegisterValidation()

	r := gin.Default()
	r.Use(middlewares.RequestID(), middlewares.ErrorHandler())

	auth := middlewares.Auth(d.Tokens)
	verified := middlewares.VerifiedUser()
	admin := middlewares.AdminRole()

	if d.Hub != nil {
		r.GET("/ws", auth, controllers.NewRealtimeController(d.Hub, d.Origins).Connect)
	}

	api := r.Group("/api/v1")

	// Users and auth
	ac := controllers.NewAuthController(d.Auth)
	uc := controllers.NewUserController(d.Users, d.Tracking, d.Water)
	dc := controllers.NewDeviceController(d.Push)
	users := api.Group("/users")
	{
		users.POST("/register", ac.Register)
		users.POST("/login", ac.Login)
		users.POST("/refresh-token", ac.RefreshToken)
		users.POST("/verify-email", ac.VerifyEmail)
		users.POST("/forgot-password", ac.ForgotPassword)
		users.POST("/verify-otp-code", ac.VerifyOTP)
		users.POST("/reset-password", ac.ResetPassword)

		users.GET("", auth, admin, uc.List)
		users.POST("/logout", auth, ac.Logout)
		users.POST("/resend-verify-email", auth, ac.ResendVerifyEmail)
		users.GET("/me", auth, uc.Me)
		users.PATCH("/me", auth, verified, uc.UpdateMe)
		users.PUT("/change-password", auth, verified, ac.ChangePassword)
		users.PATCH("/me/notify-settings", auth, verified, uc.UpdateNotifySettings)
		users.POST("/me/devices", auth, verified, dc.Register)
		users.POST("/ban/:user_id", auth, admin, uc.Ban)
		users.POST("/unban/:user_id", auth, admin, uc.Unban)

		users.POST("/health-tracking", auth, verified, uc.UpsertHealthTracking)
		users.GET("/health-tracking", auth, verified, uc.GetHealthTracking)
		users.POST("/health-tracking-details", auth, verified, uc.AddHealthTrackingDetail)
		users.POST("/waters", auth, verified, uc.AddWater)
		users.GET("/waters", auth, verified, uc.GetWater)
	}

	ec := controllers.NewExerciseController(d.Exercises)
	exercises := api.Group("/exercises", auth)
	{
		exercises.GET("", ec.Search)
		exercises.GET("/all", ec.All)
		exercises.GET("/:id", ec.GetByID)
		exercises.POST("", admin, ec.Add)
		exercises.PATCH("/:id", admin, ec.Update)
		exercises.DELETE("/:id", admin, ec.Delete)
		exercises.POST("/:id/rating", verified, ec.Rating)
	}

	ic := controllers.NewIngredientController(d.Ingredients)
	ingredients := api.Group("/ingredients", auth)
	{
		ingredients.GET("", ic.Search)
		ingredients.GET("/:id", ic.GetByID)
		ingredients.POST("", admin, ic.Add)
		ingredients.PATCH("/:id", admin, ic.Update)
		ingredients.DELETE("/:id", admin, ic.Delete)
	}

	dish := controllers.NewDishController(d.Dishes)
	dishes := api.Group("/dishes", auth)
	{
		dishes.GET("", dish.Search)
		dishes.GET("/:id", dish.GetByID)
		dishes.POST("", verified, dish.Add)
		dishes.PATCH("/:id", verified, dish.Update)
		dishes.DELETE("/:id", verified, dish.Delete)
		dishes.POST("/:id/rating", verified, dish.Rating)
		dishes.POST("/:id/ingredients", verified, dish.AddIngredient)
		dishes.GET("/:id/ingredients/:ingredient_id", dish.GetIngredient)
		dishes.PATCH("/:id/ingredients/:ingredient_id", verified, dish.UpdateIngredient)
		dishes.DELETE("/:id/ingredients/:ingredient_id", verified, dish.DeleteIngredient)
	}

	mc := controllers.NewMealController(d.Meals)
	meals := api.Group("/meals", auth)
	{
		meals.GET("", mc.Search)
		meals.GET("/date", mc.ByDate)
		meals.GET("/:meal_id", mc.GetByID)
		meals.POST("", verified, mc.Add)
		meals.POST("/clone", verified, mc.Clone)
		meals.PUT("/:meal_id", verified, mc.Update)
		meals.DELETE("/:meal_id", verified, mc.Delete)
	}

	sc := controllers.NewSetController(d.Sets)
	sets := api.Group("/sets", auth)
	{
		sets.GET("", sc.Search)
		sets.GET("/:id", sc.GetByID)
		sets.POST("", verified, sc.Add)
		sets.PATCH("/:id", verified, sc.Update)
		sets.DELETE("/:id", verified, sc.Delete)
		sets.POST("/:id/rating", verified, sc.Rating)
	}
	setExercises := api.Group("/sets-exercise", auth)
	{
		setExercises.GET("/:setId/:id", sc.GetSetExercise)
		setExercises.POST("/:setId", verified, sc.AddSetExercise)
		setExercises.PATCH("/:setId/:id", verified, sc.UpdateSetExercise)
		setExercises.DELETE("/:setId/:id", verified, sc.DeleteSetExercise)
	}

	wc := controllers.NewWorkoutPlanController(d.Plans, d.PlanDetails)
	plans := api.Group("/workout-plans", auth)
	{
		plans.GET("", wc.Search)
		plans.GET("/:id", wc.GetByID)
		plans.POST("", verified, wc.Add)
		plans.PATCH("/:id", verified, wc.Update)
		plans.DELETE("/:id", verified, wc.Delete)
	}
	details := api.Group("/workout-plan-details", auth)
	{
		details.GET("/:workoutPlanId", wc.ListDetails)
		details.GET("/:workoutPlanId/:id", wc.GetDetail)
		details.POST("/:workoutPlanId", verified, wc.AddDetail)
		details.POST("/:workoutPlanId/:id", verified, wc.AddDetailSet)
		details.DELETE("/:workoutPlanId/:id/:setId", verified, wc.DeleteDetailSet)
		details.PATCH("/:workoutPlanId/:id", verified, wc.UpdateDetail)
		details.DELETE("/:workoutPlanId/:id", verified, wc.DeleteDetail)
	}

	cc := controllers.NewChallengeController(d.Challenges)
	challenges := api.Group("/challenges", auth)
	{
		challenges.GET("", cc.Search)
		challenges.GET("/joined", cc.Joined)
		challenges.GET("/:id", cc.GetByID)
		challenges.POST("", admin, cc.Add)
		challenges.PATCH("/:id", admin, cc.Update)
		challenges.PUT("/:id/meal", admin, cc.UpdateMeal)
		challenges.PUT("/:id/workout", admin, cc.UpdateWorkout)
		challenges.POST("/join/:id", verified, cc.Join)
		challenges.POST("/:id/activate", admin, cc.Activate)
		challenges.POST("/:id/deactivate", admin, cc.Deactivate)
		challenges.DELETE("/:id", admin, cc.Delete)
	}

	fc := controllers.NewFeedbackController(d.Reports, d.Contacts)
	reports := api.Group("/reports", auth)
	{
		reports.GET("", admin, fc.SearchReports)
		reports.GET("/:id", admin, fc.GetReport)
		reports.POST("", verified, fc.AddReport)
		reports.PATCH("/status", admin, fc.UpdateReportStatus)
		reports.DELETE("/:id", admin, fc.DeleteReport)
	}
	contacts := api.Group("/contacts", auth)
	{
		contacts.GET("", admin, fc.SearchContacts)
		contacts.POST("", verified, fc.AddContact)
		contacts.PATCH("/status", admin, fc.UpdateContactStatus)
	}

	if d.Chats != nil {
		chat := controllers.NewChatController(d.Chats)
		chats := api.Group("/chats", auth, verified)
		{
			chats.GET("/rooms", chat.Rooms)
			chats.POST("/chat-room", chat.CreateRoom)
			chats.GET("/:chat_room_id/messages", chat.Messages)
			chats.POST("/:chat_room_id", chat.Send)
			chats.DELETE("/:chat_room_id", chat.DeleteRoom)
		}
	}

	media := controllers.NewMediaController(d.Media)
	medias := api.Group("/medias", auth, verified)
	{
		medias.POST("/images", media.UploadImage)
		medias.POST("/videos", media.UploadVideo)
	}

	nc := controllers.NewNotificationController(d.Notifications)
	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", nc.List)
		notifications.PATCH("/read", nc.MarkAllRead)
		notifications.POST("/toggle", dc.Toggle)
		notifications.POST("/send", admin, nc.Send)
	}

	stc := controllers.NewStatisticsController(d.Statistics)
	statistics := api.Group("/statistics", auth)
	{
		statistics.GET("/top", admin, stc.Top)
		statistics.GET("/summary", stc.Summary)
	}

	rc := controllers.NewRecommendationController(d.Recommendation)
	recommends := api.Group("/recommends", auth, verified)
	{
		recommends.POST("/calories", rc.Calories)
		recommends.POST("/workout-plans", rc.WorkoutPlans)
		recommends.POST("/dishes", rc.Dishes)
	}

	return r
}
