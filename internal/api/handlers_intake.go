package api

import (
	"github.com/gofiber/fiber/v2"
)

type symptomInput struct {
	Name string `json:"name" form:"name"`
}

type symptomUpdateInput struct {
	Field string `json:"field" form:"field"`
	Value any    `json:"value" form:"value"`
}

// CreateIntake starts a symptom-checker session. Creation is throttled per
// client since sessions live in memory until purged.
func (handler *Handler) CreateIntake(c *fiber.Ctx) error {
	key := requestLimiterKey(c)
	now := handler.clock.Now()
	if handler.intakeLimiter.tooManyRecent(key, now, handler.intakeCreateLimit, handler.intakeCreateWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many intake sessions, try again later")
	}
	handler.intakeLimiter.record(key, now, handler.intakeCreateWindow)

	session := handler.intakes.Create(currentClientID(c))
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (handler *Handler) GetIntake(c *fiber.Ctx) error {
	session, err := handler.intakes.Get(currentClientID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) DeleteIntake(c *fiber.Ctx) error {
	if err := handler.intakes.Delete(currentClientID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) AddIntakeSymptom(c *fiber.Ctx) error {
	input := symptomInput{}
	if err := parseBody(c, &input); err != nil {
		return err
	}
	session, err := handler.intakes.AddSymptom(currentClientID(c), c.Params("id"), input.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) UpdateIntakeSymptom(c *fiber.Ctx) error {
	input := symptomUpdateInput{}
	if err := parseBody(c, &input); err != nil {
		return err
	}
	session, err := handler.intakes.UpdateSymptom(currentClientID(c), c.Params("id"), c.Params("symptomID"), input.Field, input.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) RemoveIntakeSymptom(c *fiber.Ctx) error {
	session, err := handler.intakes.RemoveSymptom(currentClientID(c), c.Params("id"), c.Params("symptomID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) ToggleIntakeArea(c *fiber.Ctx) error {
	session, err := handler.intakes.ToggleArea(currentClientID(c), c.Params("id"), c.Params("area"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) AdvanceIntake(c *fiber.Ctx) error {
	session, err := handler.intakes.Advance(currentClientID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) RetreatIntake(c *fiber.Ctx) error {
	session, err := handler.intakes.Retreat(currentClientID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) ResetIntake(c *fiber.Ctx) error {
	session, err := handler.intakes.Reset(currentClientID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) JumpIntake(c *fiber.Ctx) error {
	step, ok := paramInt(c, "step")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid step")
	}
	session, err := handler.intakes.JumpTo(currentClientID(c), c.Params("id"), step)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) DismissIntakeEmergency(c *fiber.Ctx) error {
	session, err := handler.intakes.DismissEmergency(currentClientID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

func (handler *Handler) IntakeRecommendations(c *fiber.Ctx) error {
	doctors, err := handler.intakes.Recommendations(currentClientID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"doctors": doctors})
}

// SelectIntakeDoctor records the pick on the session and hands the doctor
// over to the booking page.
func (handler *Handler) SelectIntakeDoctor(c *fiber.Ctx) error {
	clientID := currentClientID(c)
	doctor, err := handler.intakes.SelectDoctor(clientID, c.Params("id"), c.Params("doctorID"))
	if err != nil {
		return respondError(c, err)
	}
	result, err := handler.handoffs.Remember(clientID, doctor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"doctor":        result.Doctor,
		"handoff_token": result.Token,
		"expires_at":    result.ExpiresAt,
		"booking_path":  "/appointment-booking?handoff=" + result.Token,
	})
}
