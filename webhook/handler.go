// Package webhook exposes the HTTP entry point of the pipeline: the
// provider's webhook events that start and stop RTMS sessions.
package webhook

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Sessions is the slice of the session manager the webhook drives.
type Sessions interface {
	Start(meetingUUID, streamID, serverURL string)
	Stop(meetingUUID string) bool
}

type event struct {
	Event   string `json:"event"`
	Payload struct {
		PlainToken   string `json:"plainToken"`
		MeetingUUID  string `json:"meeting_uuid"`
		RTMSStreamID string `json:"rtms_stream_id"`
		ServerURLs   string `json:"server_urls"`
	} `json:"payload"`
}

// Handler validates and dispatches webhook events.
type Handler struct {
	secret   string
	sessions Sessions
}

// NewHandler creates a webhook handler bound to the shared secret.
func NewHandler(secret string, sessions Sessions) *Handler {
	return &Handler{secret: secret, sessions: sessions}
}

// Register mounts the webhook and health routes.
func (h *Handler) Register(app *fiber.App) {
	app.Post("/webhook", h.handleEvent)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
}

func (h *Handler) handleEvent(c *fiber.Ctx) error {
	body := c.Body()

	var ev event
	if err := json.Unmarshal(body, &ev); err != nil {
		log.Printf("webhook: invalid JSON body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
	}

	// The validation challenge proves possession of the secret on its own,
	// so it is answered before signature checking.
	if ev.Event == "endpoint.url_validation" && ev.Payload.PlainToken != "" {
		log.Println("webhook: responding to URL validation challenge")
		return c.JSON(fiber.Map{
			"plainToken":     ev.Payload.PlainToken,
			"encryptedToken": EncryptToken(h.secret, ev.Payload.PlainToken),
		})
	}

	if !VerifySignature(h.secret, c.Get(HeaderSignature), c.Get(HeaderTimestamp), body) {
		log.Printf("webhook: rejected request with bad signature (event=%q)", ev.Event)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid signature"})
	}

	switch ev.Event {
	case "meeting.rtms_started":
		p := ev.Payload
		if p.MeetingUUID == "" || p.RTMSStreamID == "" || p.ServerURLs == "" {
			log.Println("webhook: rtms_started event missing fields, ignoring")
			break
		}
		log.Printf("webhook: RTMS started for meeting %s", p.MeetingUUID)
		h.sessions.Start(p.MeetingUUID, p.RTMSStreamID, p.ServerURLs)

	case "meeting.rtms_stopped":
		log.Printf("webhook: RTMS stopped for meeting %s", ev.Payload.MeetingUUID)
		h.sessions.Stop(ev.Payload.MeetingUUID)

	default:
		log.Printf("webhook: ignoring event %q", ev.Event)
	}

	// the provider expects webhooks to be acked regardless of outcome
	return c.JSON(fiber.Map{"status": "ok"})
}
