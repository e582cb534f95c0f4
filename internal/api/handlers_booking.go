package api

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/hospitalconnect/internal/models"
	"github.com/terraincognita07/hospitalconnect/internal/services"
)

const submissionWaitTimeout = 30 * time.Second

type startBookingInput struct {
	HandoffToken string `json:"handoff" form:"handoff"`
}

type appointmentTypeInput struct {
	TypeID string `json:"type" form:"type"`
}

type bookingDateInput struct {
	Date string `json:"date" form:"date"`
}

type bookingSlotInput struct {
	SlotID int `json:"slot" form:"slot"`
}

// StartBooking opens a booking flow for the doctor handed over by the
// symptom checker, falling back to the stored hand-off and then the default
// doctor.
func (handler *Handler) StartBooking(c *fiber.Ctx) error {
	input := startBookingInput{}
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if input.HandoffToken == "" {
		input.HandoffToken = c.Query("handoff")
	}

	clientID := currentClientID(c)
	doctor, err := handler.handoffs.ResolveDoctor(clientID, strings.TrimSpace(input.HandoffToken))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(handler.bookings.Start(clientID, doctor))
}

func (handler *Handler) GetBooking(c *fiber.Ctx) error {
	flow, err := handler.bookings.Get(currentClientID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(flow)
}

func (handler *Handler) CloseBooking(c *fiber.Ctx) error {
	if err := handler.bookings.Close(currentClientID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) SelectAppointmentType(c *fiber.Ctx) error {
	input := appointmentTypeInput{}
	if err := parseBody(c, &input); err != nil {
		return err
	}
	flow, err := handler.bookings.SelectType(currentClientID(c), c.Params("id"), strings.TrimSpace(input.TypeID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(flow)
}

func (handler *Handler) SelectBookingDate(c *fiber.Ctx) error {
	input := bookingDateInput{}
	if err := parseBody(c, &input); err != nil {
		return err
	}
	flow, err := handler.bookings.SelectDate(currentClientID(c), c.Params("id"), strings.TrimSpace(input.Date))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(flow)
}

func (handler *Handler) SelectBookingSlot(c *fiber.Ctx) error {
	input := bookingSlotInput{}
	if err := parseBody(c, &input); err != nil {
		return err
	}
	flow, err := handler.bookings.SelectSlot(currentClientID(c), c.Params("id"), input.SlotID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(flow)
}

// SubmitBooking starts the submission and answers 202 with the submitting
// flow. With ?wait=true it holds the response until the submission settles;
// the outcome, failed or confirmed, is in the returned flow.
func (handler *Handler) SubmitBooking(c *fiber.Ctx) error {
	details := models.BookingDetails{}
	if err := parseBody(c, &details); err != nil {
		return err
	}

	clientID := currentClientID(c)
	flowID := c.Params("id")
	task, err := handler.bookings.Submit(clientID, flowID, details)
	if err != nil {
		return respondError(c, err)
	}

	if c.QueryBool("wait") {
		ctx, cancel := context.WithTimeout(c.UserContext(), submissionWaitTimeout)
		defer cancel()
		if _, err := task.Wait(ctx); errors.Is(err, context.DeadlineExceeded) {
			return respondError(c, err)
		}
		flow, err := handler.bookings.Get(clientID, flowID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(flow)
	}

	flow, err := handler.bookings.Get(clientID, flowID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(flow)
}

func (handler *Handler) RescheduleBooking(c *fiber.Ctx) error {
	flow, err := handler.bookings.Reschedule(currentClientID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(flow)
}

// confirmedRecord looks up the record of a confirmed flow, else a stored
// booking with that id, so confirmations stay downloadable after the flow
// was closed or purged.
func (handler *Handler) confirmedRecord(c *fiber.Ctx) (models.BookingRecord, error) {
	clientID := currentClientID(c)
	id := c.Params("id")
	record, err := handler.bookings.ConfirmedBooking(clientID, id)
	if errors.Is(err, services.ErrBookingFlowNotFound) {
		return handler.bookings.FindBooking(clientID, id)
	}
	return record, err
}

func (handler *Handler) BookingConfirmationText(c *fiber.Ctx) error {
	record, err := handler.confirmedRecord(c)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Attachment(services.ConfirmationFileName(record, "txt"))
	return c.SendString(services.BuildConfirmationText(record))
}

func (handler *Handler) BookingConfirmationPDF(c *fiber.Ctx) error {
	record, err := handler.confirmedRecord(c)
	if err != nil {
		return respondError(c, err)
	}
	document, err := services.BuildConfirmationPDF(record)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(services.ConfirmationFileName(record, "pdf"))
	return c.Send(document)
}

func (handler *Handler) BookingLinks(c *fiber.Ctx) error {
	record, err := handler.confirmedRecord(c)
	if err != nil {
		return respondError(c, err)
	}
	links, err := services.BuildBookingLinks(record)
	if err != nil {
		return err
	}
	return c.JSON(links)
}

func (handler *Handler) CalendarMonth(c *fiber.Ctx) error {
	month, err := handler.calendar.Month(c.Query("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(month)
}

func (handler *Handler) CalendarSlots(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"slots": handler.calendar.TimeSlots()})
}
