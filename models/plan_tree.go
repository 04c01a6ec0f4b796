package models

// PlanTree is a workout plan held by value: details -> sets -> set exercises.
// Challenges embed one and joined challenges keep a cloned copy.
type PlanTree struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Image         string           `json:"image"`
	Level         string           `json:"level"`
	NumberOfWeeks int              `json:"number_of_weeks"`
	TotalCalories float64          `json:"total_calories"`
	Details       []PlanTreeDetail `json:"details"`
}

type PlanTreeDetail struct {
	Day    int       `json:"day"`
	Week   int       `json:"week"`
	Status string    `json:"status"`
	Sets   []SetNode `json:"sets"`
}

type SetNode struct {
	ID            uint              `json:"id"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Description   string            `json:"description"`
	Image         string            `json:"image"`
	TotalCalories float64           `json:"total_calories"`
	UserID        *uint             `json:"user_id"`
	Exercises     []SetExerciseNode `json:"set_exercises"`
}

type SetExerciseNode struct {
	ExerciseID              uint    `json:"exercise_id"`
	Name                    string  `json:"name"`
	Duration                int     `json:"duration"`
	Reps                    int     `json:"reps"`
	Round                   int     `json:"round"`
	RestPerRound            int     `json:"rest_per_round"`
	EstimatedCaloriesBurned float64 `json:"estimated_calories_burned"`
	Status                  string  `json:"status"`
}

// DeepClone copies every level of the tree and hands each set to owner.
// Progress markers start over as Undone. Set IDs are carried so the caller
// can persist the clones and swap in the new ids.
func (t PlanTree) DeepClone(owner uint) PlanTree {
	out := t
	out.Details = make([]PlanTreeDetail, len(t.Details))
	for i, d := range t.Details {
		nd := d
		nd.Status = StatusUndone
		nd.Sets = make([]SetNode, len(d.Sets))
		for j, s := range d.Sets {
			ns := s
			uid := owner
			ns.UserID = &uid
			ns.Exercises = make([]SetExerciseNode, len(s.Exercises))
			for k, e := range s.Exercises {
				e.Status = StatusUndone
				ns.Exercises[k] = e
			}
			nd.Sets[j] = ns
		}
		out.Details[i] = nd
	}
	return out
}

// SetCount is the number of set nodes across all details.
func (t PlanTree) SetCount() int {
	n := 0
	for _, d := range t.Details {
		n += len(d.Sets)
	}
	return n
}

func NewSetNode(s Set) SetNode {
	n := SetNode{
		ID:            s.ID,
		Name:          s.Name,
		Type:          s.Type,
		Description:   s.Description,
		Image:         s.Image,
		TotalCalories: s.TotalCalories,
		UserID:        s.UserID,
		Exercises:     make([]SetExerciseNode, 0, len(s.SetExercises)),
	}
	for _, se := range s.SetExercises {
		name := ""
		if se.Exercise != nil {
			name = se.Exercise.Name
		}
		n.Exercises = append(n.Exercises, SetExerciseNode{
			ExerciseID:              se.ExerciseID,
			Name:                    name,
			Duration:                se.Duration,
			Reps:                    se.Reps,
			Round:                   se.Round,
			RestPerRound:            se.RestPerRound,
			EstimatedCaloriesBurned: se.EstimatedCaloriesBurned,
			Status:                  se.Status,
		})
	}
	return n
}

// ToSet builds an unsaved Set row for the node.
func (n SetNode) ToSet() Set {
	s := Set{
		Name:              n.Name,
		Type:              n.Type,
		Description:       n.Description,
		Image:             n.Image,
		TotalCalories:     n.TotalCalories,
		NumberOfExercises: len(n.Exercises),
		UserID:            n.UserID,
	}
	for i, e := range n.Exercises {
		s.SetExercises = append(s.SetExercises, SetExercise{
			ExerciseID:              e.ExerciseID,
			Duration:                e.Duration,
			Reps:                    e.Reps,
			Round:                   e.Round,
			RestPerRound:            e.RestPerRound,
			EstimatedCaloriesBurned: e.EstimatedCaloriesBurned,
			Status:                  e.Status,
			Orders:                  i + 1,
		})
	}
	return s
}

func NewPlanTree(p WorkoutPlan) PlanTree {
	t := PlanTree{
		Name:          p.Name,
		Description:   p.Description,
		Image:         p.Image,
		Level:         p.Level,
		NumberOfWeeks: p.NumberOfWeeks,
		TotalCalories: p.TotalCalories,
		Details:       make([]PlanTreeDetail, 0, len(p.Details)),
	}
	for _, d := range p.Details {
		nd := PlanTreeDetail{Day: d.Day, Week: d.Week, Status: d.Status, Sets: make([]SetNode, 0, len(d.Sets))}
		for _, s := range d.Sets {
			nd.Sets = append(nd.Sets, NewSetNode(s))
		}
		t.Details = append(t.Details, nd)
	}
	return t
}
