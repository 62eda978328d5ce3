package timesheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/artihcus/portal/internal/event_bus"
	"github.com/artihcus/portal/internal/utils"
	"github.com/artihcus/portal/pkg/session"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Open starts a fresh draft for the session, replacing any existing one.
	Open(ctx context.Context) (Draft, error)
	// Current returns the session's draft, opening one when there is none.
	Current(ctx context.Context) (Draft, error)
	UpdateHeader(ctx context.Context, header Header) (Draft, error)
	SetField(ctx context.Context, index int, field Field, value string) (Draft, error)
	AddRow(ctx context.Context) (Draft, error)
	Submit(ctx context.Context) (Receipt, error)
	Export(ctx context.Context, format string) (Export, error)
}

type ServiceImpl struct {
	store     DraftStore
	renderers map[string]Renderer
	eventBus  *event_bus.EventBus
	clock     utils.Clock
}

func NewService(store DraftStore, eventBus *event_bus.EventBus, clock utils.Clock, renderers ...Renderer) *ServiceImpl {
	byFormat := make(map[string]Renderer, len(renderers))
	for _, r := range renderers {
		byFormat[r.Format()] = r
	}
	s := &ServiceImpl{
		store:     store,
		renderers: byFormat,
		eventBus:  eventBus,
		clock:     clock,
	}
	event_bus.SubscribeTyped(eventBus, event_bus.SessionEnded, func(e event_bus.EventT[event_bus.SessionEndedEvent]) error {
		log.Debugf("dropping timesheet draft of session %s", e.Data.SessionId)
		store.Delete(e.Data.SessionId)
		return nil
	})
	return s
}

func (s *ServiceImpl) Open(ctx context.Context) (Draft, error) {
	current, err := session.Current(ctx)
	if err != nil {
		return Draft{}, err
	}
	return s.store.Update(current.Id, func(Draft, bool) (Draft, error) {
		return s.newDraft(current), nil
	})
}

func (s *ServiceImpl) Current(ctx context.Context) (Draft, error) {
	return s.update(ctx, func(d Draft) (Draft, error) {
		return d, nil
	})
}

func (s *ServiceImpl) UpdateHeader(ctx context.Context, header Header) (Draft, error) {
	if !validMonth(header.Month) {
		return Draft{}, fmt.Errorf("%w: %q is not a month", ErrInvalidValue, header.Month)
	}
	return s.update(ctx, func(d Draft) (Draft, error) {
		d.Header = header
		d.UpdatedAt = s.clock.Now()
		return d, nil
	})
}

func (s *ServiceImpl) SetField(ctx context.Context, index int, field Field, value string) (Draft, error) {
	return s.update(ctx, func(d Draft) (Draft, error) {
		sheet, err := d.Sheet.SetField(index, field, value)
		if err != nil {
			return d, err
		}
		d.Sheet = sheet
		d.UpdatedAt = s.clock.Now()
		return d, nil
	})
}

func (s *ServiceImpl) AddRow(ctx context.Context) (Draft, error) {
	return s.update(ctx, func(d Draft) (Draft, error) {
		d.Sheet = d.Sheet.AddRow()
		d.UpdatedAt = s.clock.Now()
		return d, nil
	})
}

func (s *ServiceImpl) Submit(ctx context.Context) (Receipt, error) {
	current, err := session.Current(ctx)
	if err != nil {
		return Receipt{}, err
	}
	draft, found := s.store.Take(current.Id)
	if !found {
		draft = s.newDraft(current)
	}

	receipt := Receipt{
		Message:     SubmittedMessage,
		SubmittedAt: s.clock.Now(),
		Rows:        draft.Sheet.Len(),
		TotalHours:  draft.Sheet.TotalHours(),
	}
	log.Infof("timesheet for %s submitted by %s: %d rows, %.2f hours", draft.Header.Month, current.Owner(), receipt.Rows, receipt.TotalHours)

	s.eventBus.Notify(ctx, event_bus.TimesheetSubmitted, event_bus.TimesheetSubmittedEvent{
		SessionId:   current.Id,
		Owner:       current.Owner(),
		Month:       draft.Header.Month,
		Rows:        receipt.Rows,
		TotalHours:  receipt.TotalHours,
		SubmittedAt: receipt.SubmittedAt,
	})
	return receipt, nil
}

func (s *ServiceImpl) Export(ctx context.Context, format string) (Export, error) {
	renderer, ok := s.renderers[strings.ToLower(format)]
	if !ok {
		return Export{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	current, err := session.Current(ctx)
	if err != nil {
		return Export{}, err
	}
	draft, err := s.Current(ctx)
	if err != nil {
		return Export{}, err
	}

	content, err := renderer.Render(draft)
	if err != nil {
		log.Errorf("failed to render timesheet as %s: %v", renderer.Format(), err)
		return Export{}, err
	}

	s.eventBus.Notify(ctx, event_bus.TimesheetExported, event_bus.TimesheetExportedEvent{
		SessionId: current.Id,
		Owner:     current.Owner(),
		Month:     draft.Header.Month,
		Format:    renderer.Format(),
	})
	return Export{
		ContentType: renderer.ContentType(),
		Filename:    exportFilename(draft.Header, renderer.Format()),
		Content:     content,
	}, nil
}

// DeleteIdle drops drafts left untouched since before.
func (s *ServiceImpl) DeleteIdle(before time.Time) int {
	removed := s.store.DeleteIdle(before)
	if removed > 0 {
		log.Infof("removed %d idle timesheet drafts", removed)
	}
	return removed
}

func (s *ServiceImpl) update(ctx context.Context, fn func(Draft) (Draft, error)) (Draft, error) {
	current, err := session.Current(ctx)
	if err != nil {
		return Draft{}, err
	}
	return s.store.Update(current.Id, func(d Draft, found bool) (Draft, error) {
		if !found {
			d = s.newDraft(current)
		}
		return fn(d)
	})
}

func (s *ServiceImpl) newDraft(owner session.Session) Draft {
	now := s.clock.Now()
	return Draft{
		Header: Header{
			Month:      now.Month().String(),
			EmployeeId: owner.User.UserId,
			Name:       owner.User.Name,
		},
		Sheet:     New(),
		UpdatedAt: now,
	}
}

func exportFilename(header Header, format string) string {
	name := "timesheet"
	if header.Month != "" {
		name += "-" + strings.ToLower(header.Month)
	}
	if header.EmployeeId != "" {
		name += "-" + sanitizeFilename(header.EmployeeId)
	}
	return name + "." + format
}

func sanitizeFilename(value string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, value)
}
