package services

import (
	"context"
	"fmt"
	"log"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	msgChallengeNotFound      = "challenge not found"
	msgChallengeAlreadyJoined = "challenge already joined"
	msgChallengeInUse         = "challenge is joined by users"
	msgChallengeNoMeal        = "challenge does not have a meal"
	msgChallengeNoWorkout     = "challenge does not have a workout plan"
)

type ChallengeService struct {
	db       *gorm.DB
	notifier NotificationSender
}

func NewChallengeService(db *gorm.DB, notifier NotificationSender) *ChallengeService {
	return &ChallengeService{db: db, notifier: notifier}
}

type ChallengeMealRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Image       string            `json:"image" binding:"omitempty,url"`
	MealType    string            `json:"meal_type" binding:"required,oneof=Breakfast Lunch Dinner"`
	Dishes      []MealDishRequest `json:"dishes" binding:"dive"`
}

// MealSource is either an existing meal id or an inline meal.
type MealSource struct {
	MealID *uint                 `json:"meal_id"`
	Meal   *ChallengeMealRequest `json:"meal"`
}

// WorkoutSource is either an existing workout plan id or an inline plan.
type WorkoutSource struct {
	WorkoutPlanID *uint               `json:"workout_plan_id"`
	WorkoutPlan   *WorkoutPlanRequest `json:"workout_plan"`
}

type ChallengeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required,oneof=Fitness Eating Combo"`
	Image       string `json:"image" binding:"omitempty,url"`
	Target      string `json:"target" binding:"omitempty,oneof='Weight Loss' 'Muscle Gain' Maintain 'Build Body'"`
	TargetImage string `json:"target_image" binding:"omitempty,url"`
	FitnessGoal string `json:"fitness_goal"`
	Prize       string `json:"prize_title"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Inactive Expired"`
	MealSource
	WorkoutSource
}

type UpdateChallengeRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Type        *string `json:"type" binding:"omitempty,oneof=Fitness Eating Combo"`
	Image       *string `json:"image" binding:"omitempty,url"`
	Target      *string `json:"target" binding:"omitempty,oneof='Weight Loss' 'Muscle Gain' Maintain 'Build Body'"`
	TargetImage *string `json:"target_image" binding:"omitempty,url"`
	FitnessGoal *string `json:"fitness_goal"`
	Prize       *string `json:"prize_title"`
	StartDate   *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status" binding:"omitempty,oneof=Active Inactive Expired"`
}

var challengeList = listSpec{
	searchColumn: "name",
	sortable:     columns("name", "start_date", "end_date", "created_at", "updated_at"),
	defaultSort:  "name",
}

// Search filters by name, challenge type and status.
func (s *ChallengeService) Search(q SearchQuery) (*Page[models.Challenge], error) {
	db := applySearch(s.db.Model(&models.Challenge{}), challengeList.searchColumn, q.Search)
	db = applyEnum(db, "type", q.Type)
	db = applyEnum(db, "status", q.Status)
	return paginate[models.Challenge](db, challengeList, q)
}

func (s *ChallengeService) GetByID(id uint) (*models.Challenge, error) {
	return first[models.Challenge](s.db, id, msgChallengeNotFound)
}

// mealCopy resolves a meal source into the value embedded in a challenge.
func mealCopy(db *gorm.DB, src MealSource) (*models.MealCopy, *uint, error) {
	switch {
	case src.MealID != nil:
		m, err := first[models.Meal](db, *src.MealID, msgMealNotFound, "Dishes")
		if err != nil {
			return nil, nil, err
		}
		if m.UserID != nil {
			return nil, nil, utils.Forbidden(msgMealNoPermission)
		}
		cp := &models.MealCopy{
			Name:        m.Name,
			Description: m.Description,
			Image:       m.Image,
			MealType:    m.MealType,
			Calories:    m.Calories,
			Dishes:      make([]models.MealDishCopy, 0, len(m.Dishes)),
		}
		for _, d := range m.Dishes {
			cp.Dishes = append(cp.Dishes, models.MealDishCopy{DishID: d.DishID, Name: d.Name, Image: d.Image, Calories: d.Calories, Quantity: d.Quantity})
		}
		id := m.ID
		return cp, &id, nil
	case src.Meal != nil:
		dishes, kcal, err := copyDishes(db, src.Meal.Dishes, nil)
		if err != nil {
			return nil, nil, err
		}
		cp := &models.MealCopy{
			Name:        src.Meal.Name,
			Description: src.Meal.Description,
			Image:       src.Meal.Image,
			MealType:    src.Meal.MealType,
			Calories:    kcal,
			Dishes:      make([]models.MealDishCopy, 0, len(dishes)),
		}
		for _, d := range dishes {
			cp.Dishes = append(cp.Dishes, models.MealDishCopy{DishID: d.DishID, Name: d.Name, Image: d.Image, Calories: d.Calories, Quantity: d.Quantity})
		}
		return cp, nil, nil
	}
	return nil, nil, nil
}

// planTree resolves a workout source into an owned value tree. Inline sets are
// saved as system sets first so every node carries a real set id.
func planTree(tx *gorm.DB, src WorkoutSource) (*models.PlanTree, *uint, error) {
	switch {
	case src.WorkoutPlanID != nil:
		p, err := loadPlan(tx, *src.WorkoutPlanID)
		if err != nil {
			return nil, nil, err
		}
		if p.UserID != nil {
			return nil, nil, utils.Forbidden(msgWorkoutPlanNoPermission)
		}
		t := models.NewPlanTree(*p)
		id := p.ID
		return &t, &id, nil
	case src.WorkoutPlan != nil:
		req := src.WorkoutPlan
		var sets []SetRequest
		for _, d := range req.Details {
			sets = append(sets, d.Sets...)
		}
		if err := checkExercises(tx, setExerciseIDs(sets...)); err != nil {
			return nil, nil, err
		}
		t := &models.PlanTree{
			Name:          req.Name,
			Description:   req.Description,
			Image:         req.Image,
			Level:         req.Level,
			NumberOfWeeks: req.NumberOfWeeks,
			TotalCalories: req.TotalCalories,
			Details:       make([]models.PlanTreeDetail, 0, len(req.Details)),
		}
		for _, d := range req.Details {
			node := models.PlanTreeDetail{Day: d.Day, Week: d.Week, Status: models.StatusUndone, Sets: make([]models.SetNode, 0, len(d.Sets))}
			for _, sr := range d.Sets {
				set := newSet(sr, nil)
				if err := tx.Create(set).Error; err != nil {
					return nil, nil, err
				}
				saved, err := first[models.Set](tx, set.ID, msgSetNotFound, "SetExercises.Exercise")
				if err != nil {
					return nil, nil, err
				}
				node.Sets = append(node.Sets, models.NewSetNode(*saved))
			}
			t.Details = append(t.Details, node)
		}
		return t, nil, nil
	}
	return nil, nil, nil
}

func inlineSetIDs(ch *models.Challenge) []uint {
	tree := ch.PlanSnapshot.Data()
	if tree == nil || ch.WorkoutPlanID != nil {
		return nil
	}
	var ids []uint
	for _, d := range tree.Details {
		for _, s := range d.Sets {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// tagInlineSets marks the sets of an inline workout as belonging to ch, which
// keeps them out of the set catalog and blocks deleting them on their own.
func tagInlineSets(tx *gorm.DB, ch *models.Challenge) error {
	ids := inlineSetIDs(ch)
	if len(ids) == 0 {
		return nil
	}
	return tx.Model(&models.Set{}).Where("id IN ?", ids).Update("challenge_id", ch.ID).Error
}

func (s *ChallengeService) Add(req ChallengeRequest, c utils.Caller) (*models.Challenge, error) {
	status := req.Status
	if status == "" {
		status = models.ChallengeActive
	}
	ch := &models.Challenge{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		Image:       req.Image,
		Target:      req.Target,
		TargetImage: req.TargetImage,
		FitnessGoal: req.FitnessGoal,
		Prize:       req.Prize,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      status,
		CreatedBy:   c.ID,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		meal, mealID, err := mealCopy(tx, req.MealSource)
		if err != nil {
			return err
		}
		tree, planID, err := planTree(tx, req.WorkoutSource)
		if err != nil {
			return err
		}
		ch.MealID, ch.WorkoutPlanID = mealID, planID
		ch.MealSnapshot = datatypes.NewJSONType(meal)
		ch.PlanSnapshot = datatypes.NewJSONType(tree)
		if err := tx.Create(ch).Error; err != nil {
			return err
		}
		return tagInlineSets(tx, ch)
	})
	if err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}
	return ch, nil
}

func (s *ChallengeService) Update(id uint, req UpdateChallengeRequest) (*models.Challenge, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	p := Patch{}
	setIf(p, "name", req.Name)
	setIf(p, "description", req.Description)
	setIf(p, "type", req.Type)
	setIf(p, "image", req.Image)
	setIf(p, "target", req.Target)
	setIf(p, "target_image", req.TargetImage)
	setIf(p, "fitness_goal", req.FitnessGoal)
	setIf(p, "prize", req.Prize)
	setIf(p, "start_date", req.StartDate)
	setIf(p, "end_date", req.EndDate)
	setIf(p, "status", req.Status)
	if err := applyPatch[models.Challenge](s.db, id, p); err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// UpdateMeal replaces the embedded meal copy.
func (s *ChallengeService) UpdateMeal(id uint, src MealSource) (*models.Challenge, error) {
	ch, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	meal, mealID, err := mealCopy(s.db, src)
	if err != nil {
		return nil, err
	}
	if meal == nil {
		return nil, utils.BadRequest(msgChallengeNoMeal)
	}
	ch.MealID = mealID
	ch.MealSnapshot = datatypes.NewJSONType(meal)
	if err := s.db.Model(ch).Select("meal_id", "meal_snapshot").Updates(ch).Error; err != nil {
		return nil, fmt.Errorf("update challenge meal: %w", err)
	}
	return s.GetByID(id)
}

// UpdateWorkout replaces the embedded plan tree; sets created for the old inline plan are removed.
func (s *ChallengeService) UpdateWorkout(id uint, src WorkoutSource) (*models.Challenge, error) {
	ch, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		stale := inlineSetIDs(ch)
		tree, planID, err := planTree(tx, src)
		if err != nil {
			return err
		}
		if tree == nil {
			return utils.BadRequest(msgChallengeNoWorkout)
		}
		ch.WorkoutPlanID = planID
		ch.PlanSnapshot = datatypes.NewJSONType(tree)
		if err := tx.Model(ch).Select("workout_plan_id", "plan_snapshot").Updates(ch).Error; err != nil {
			return err
		}
		if err := deleteSets(tx, stale); err != nil {
			return err
		}
		return tagInlineSets(tx, ch)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// Join copies the challenge for the caller. Every set of the embedded plan is
// cloned under the caller and the clone's ids replace the originals.
func (s *ChallengeService) Join(ctx context.Context, id uint, c utils.Caller) (*models.UserChallenge, error) {
	ch, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	n, err := countWhere(s.db, &models.UserChallenge{}, "user_id = ? AND challenge_id = ?", c.ID, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, utils.BadRequest(msgChallengeAlreadyJoined)
	}

	uc := &models.UserChallenge{UserID: c.ID, ChallengeID: id, Status: models.GoalStart}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var tree *models.PlanTree
		if src := ch.PlanSnapshot.Data(); src != nil {
			clone := src.DeepClone(c.ID)
			for i := range clone.Details {
				for j := range clone.Details[i].Sets {
					node := &clone.Details[i].Sets[j]
					set := node.ToSet()
					if err := tx.Create(&set).Error; err != nil {
						return err
					}
					node.ID = set.ID
				}
			}
			tree = &clone
		}
		uc.Snapshot = datatypes.NewJSONType(models.ChallengeCopy{
			ChallengeID: ch.ID,
			Name:        ch.Name,
			Type:        ch.Type,
			Description: ch.Description,
			Image:       ch.Image,
			Target:      ch.Target,
			StartDate:   ch.StartDate,
			EndDate:     ch.EndDate,
			Meal:        ch.MealSnapshot.Data(),
			Workout:     tree,
		})
		return tx.Create(uc).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return nil, utils.BadRequest(msgChallengeAlreadyJoined)
		}
		return nil, fmt.Errorf("join challenge: %w", err)
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("You joined the challenge %q. Good luck!", ch.Name)
		if err := s.notifier.Notify(ctx, c.ID, models.NotifyChallenge, "Challenge joined", msg); err != nil {
			log.Printf("notify challenge join: %v", err)
		}
	}
	return uc, nil
}

// Joined lists the caller's joined challenges, newest first.
func (s *ChallengeService) Joined(c utils.Caller) ([]models.UserChallenge, error) {
	out := []models.UserChallenge{}
	err := s.db.Where("user_id = ?", c.ID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (s *ChallengeService) setStatus(id uint, status string) (*models.Challenge, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Challenge{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *ChallengeService) Activate(id uint) (*models.Challenge, error) {
	return s.setStatus(id, models.ChallengeActive)
}

func (s *ChallengeService) Deactivate(id uint) (*models.Challenge, error) {
	return s.setStatus(id, models.ChallengeInactive)
}

// Delete refuses with 400 while any user has joined.
func (s *ChallengeService) Delete(id uint) error {
	ch, err := s.GetByID(id)
	if err != nil {
		return err
	}
	n, err := countWhere(s.db, &models.UserChallenge{}, "challenge_id = ?", id)
	if err != nil {
		return err
	}
	if n > 0 {
		return utils.BadRequest(msgChallengeInUse)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteSets(tx, inlineSetIDs(ch)); err != nil {
			return err
		}
		return tx.Delete(&models.Challenge{}, id).Error
	})
}
