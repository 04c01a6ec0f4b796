package models

type UserRole int

const (
	RoleUser UserRole = iota
	RoleAdmin
)

type UserVerifyStatus int

const (
	Unverified UserVerifyStatus = iota
	Verified
	Banned
)

const (
	UserStatusNormal = "Normal"
	UserStatusBan    = "Ban"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Shared by user level, set type and workout plan type.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

const (
	CategoryCardio   = "Cardio"
	CategoryStrength = "Strength"
)

const (
	StatusDone   = "Done"
	StatusUndone = "Undone"
)

const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
)

const (
	ChallengeFitness = "Fitness"
	ChallengeEating  = "Eating"
	ChallengeCombo   = "Combo"
)

const (
	TargetWeightLoss = "Weight Loss"
	TargetMuscleGain = "Muscle Gain"
	TargetMaintain   = "Maintain"
	TargetBuildBody  = "Build Body"
)

const (
	ChallengeActive   = "Active"
	ChallengeInactive = "Inactive"
	ChallengeExpired  = "Expired"
)

const (
	GoalUnStart = "UnStart"
	GoalStart   = "Start"
	GoalDone    = "Done"
)

type NotificationType string

const (
	NotifyChallenge NotificationType = "Challenge"
	NotifyEating    NotificationType = "Eating"
	NotifyWorkout   NotificationType = "Workout"
	NotifyWater     NotificationType = "Water"
	NotifyAdmin     NotificationType = "Admin"
	NotifyHealth    NotificationType = "Health"
)

// Reports and contacts share the same lifecycle.
const (
	FeedbackRead      = "Read"
	FeedbackUnread    = "Unread"
	FeedbackResponded = "Responded"
)

const (
	TrackingConsumed = "Calories Consumed"
	TrackingBurned   = "Calories Burned"
)

// FilterAll disables an enum filter on list endpoints.
const FilterAll = "All"

// Source filters for owned resources.
const (
	SourceSystem = "System"
	SourceMe     = "Me"
)
