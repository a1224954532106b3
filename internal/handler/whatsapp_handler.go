package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/RahulRR-10/EchoSQL/internal/config"
	"github.com/RahulRR-10/EchoSQL/internal/domain"
)

// WhatsAppHandler handles the inbound Twilio-style webhook. The channel
// carries no user auth, so questions run against the configured default
// database profile and nothing is persisted.
type WhatsAppHandler struct {
	agent    domain.AgentClient
	profiles domain.DatabaseProfileRepository
	cfg      config.WhatsAppConfig
	logger   *slog.Logger
}

// NewWhatsAppHandler creates a new WhatsApp webhook handler
func NewWhatsAppHandler(
	agent domain.AgentClient,
	profiles domain.DatabaseProfileRepository,
	cfg config.WhatsAppConfig,
	logger *slog.Logger,
) *WhatsAppHandler {
	return &WhatsAppHandler{
		agent:    agent,
		profiles: profiles,
		cfg:      cfg,
		logger:   logger,
	}
}

// Inbound answers one webhook message. Twilio expects 200 with a TwiML
// body even for application-level failures.
// POST /whatsapp
func (h *WhatsAppHandler) Inbound(ctx context.Context, c *app.RequestContext) {
	if !h.cfg.Enabled {
		c.Status(consts.StatusNotFound)
		return
	}

	if h.cfg.ValidateRequests && !h.validSignature(c) {
		h.logger.Warn("webhook signature mismatch")
		c.Status(consts.StatusForbidden)
		return
	}

	question := strings.TrimSpace(c.PostForm("Body"))
	if question == "" {
		h.reply(c, "Send a question about your data and I'll answer it.")
		return
	}

	profile, err := h.profiles.GetByID(ctx, h.cfg.DefaultDatabase)
	if err != nil {
		h.logger.Error("default webhook profile unavailable", "error", err,
			"profile_id", h.cfg.DefaultDatabase)
		h.reply(c, "The service is not configured for WhatsApp queries right now.")
		return
	}

	answer, err := h.agent.Ask(ctx, question, profile)
	if err != nil {
		h.logger.Error("webhook agent call failed", "error", err)
		h.reply(c, "The query service is unavailable. Please try again later.")
		return
	}
	if answer.ErrorMessage != "" {
		h.reply(c, "Your question could not be answered: "+answer.ErrorMessage)
		return
	}

	h.reply(c, h.composeReply(answer))
}

// composeReply builds the message text: summary first, then up to two
// sample rows.
func (h *WhatsAppHandler) composeReply(answer *domain.AgentAnswer) string {
	var b strings.Builder

	if answer.Summary != "" {
		b.WriteString(answer.Summary)
	} else {
		b.WriteString("Here is what I found.")
	}

	sample := answer.Result.Rows
	if len(sample) > 2 {
		sample = sample[:2]
	}
	for _, row := range sample {
		b.WriteString("\n")
		for i, col := range answer.Result.Columns {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %v", col, row[col])
		}
	}
	if extra := len(answer.Result.Rows) - len(sample); extra > 0 {
		fmt.Fprintf(&b, "\n(%d more rows)", extra)
	}

	text := b.String()
	if max := h.cfg.MaxReplyLength; max > 0 {
		runes := []rune(text)
		if len(runes) > max {
			text = string(runes[:max-1]) + "…"
		}
	}
	return text
}

// reply writes a TwiML response with a single message.
func (h *WhatsAppHandler) reply(c *app.RequestContext, text string) {
	body := fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?><Response><Message>%s</Message></Response>`,
		escapeXML(text),
	)
	c.Data(consts.StatusOK, "text/xml; charset=utf-8", []byte(body))
}

// validSignature checks the X-Twilio-Signature header: HMAC-SHA1 over the
// full request URL followed by the sorted POST parameters.
func (h *WhatsAppHandler) validSignature(c *app.RequestContext) bool {
	provided := c.Request.Header.Get("X-Twilio-Signature")
	if provided == "" || h.cfg.SignatureSecret == "" {
		return false
	}

	params := map[string]string{}
	keys := make([]string, 0, 8)
	c.PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if _, seen := params[k]; !seen {
			keys = append(keys, k)
		}
		params[k] = string(value)
	})
	sort.Strings(keys)

	mac := hmac.New(sha1.New, []byte(h.cfg.SignatureSecret))
	mac.Write(c.URI().FullURI())
	for _, k := range keys {
		mac.Write([]byte(k))
		mac.Write([]byte(params[k]))
	}
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(provided))
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlReplacer.Replace(s)
}
