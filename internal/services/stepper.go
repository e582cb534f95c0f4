package services

import "errors"

var ErrStepAhead = errors.New("cannot jump ahead of the current step")

const (
	StepSymptoms        = 1
	StepBodyAreas       = 2
	StepRecommendations = 3

	firstStep = StepSymptoms
	lastStep  = StepRecommendations
)

// StepController gates forward movement through the three intake steps on
// the session's current symptoms and areas.
type StepController struct {
	current  int
	symptoms func() int
	areas    func() int
}

func NewStepController(symptomCount func() int, areaCount func() int) *StepController {
	return &StepController{
		current:  firstStep,
		symptoms: symptomCount,
		areas:    areaCount,
	}
}

func (controller *StepController) Current() int {
	return controller.current
}

func (controller *StepController) CanProceed(step int) bool {
	switch step {
	case StepSymptoms:
		return controller.symptoms() > 0
	case StepBodyAreas:
		return controller.areas() > 0 || controller.symptoms() > 0
	default:
		return true
	}
}

// Advance reports whether the step changed.
func (controller *StepController) Advance() bool {
	if !controller.CanProceed(controller.current) {
		return false
	}
	next := min(lastStep, controller.current+1)
	changed := next != controller.current
	controller.current = next
	return changed
}

func (controller *StepController) Retreat() bool {
	previous := max(firstStep, controller.current-1)
	changed := previous != controller.current
	controller.current = previous
	return changed
}

func (controller *StepController) JumpTo(step int) error {
	if step < firstStep || step > controller.current {
		return ErrStepAhead
	}
	controller.current = step
	return nil
}

// Reset only rewinds the step; the owning session clears its own data.
func (controller *StepController) Reset() {
	controller.current = firstStep
}

type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepUpcoming  StepState = "upcoming"
)

type StepView struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       StepState `json:"state"`
}

func (controller *StepController) Steps() []StepView {
	steps := []StepView{
		{ID: StepSymptoms, Title: "Symptoms", Description: "Describe your symptoms"},
		{ID: StepBodyAreas, Title: "Body Areas", Description: "Select affected areas"},
		{ID: StepRecommendations, Title: "Recommendations", Description: "Get doctor matches"},
	}
	for index := range steps {
		switch {
		case steps[index].ID < controller.current:
			steps[index].State = StepCompleted
		case steps[index].ID == controller.current:
			steps[index].State = StepCurrent
		default:
			steps[index].State = StepUpcoming
		}
	}
	return steps
}
