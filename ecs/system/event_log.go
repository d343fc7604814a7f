package system

import (
	"github.com/milk9111/polarity/ecs"
	"github.com/milk9111/polarity/logging"
	"github.com/milk9111/polarity/magnet"
	"go.uber.org/zap"
)

// EventLogSystem writes the step's events to the log. It runs last so it sees
// everything the other systems pushed.
type EventLogSystem struct {
	log  *zap.Logger
	seen map[ecs.EventType]int
}

func NewEventLogSystem(log *zap.Logger) *EventLogSystem {
	return &EventLogSystem{log: logging.OrNop(log).Named("events"), seen: make(map[ecs.EventType]int)}
}

// Count returns how many events of type t have been seen.
func (s *EventLogSystem) Count(t ecs.EventType) int {
	if s == nil {
		return 0
	}
	return s.seen[t]
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Items() {
		s.seen[evt.Type]++
		fields := []zap.Field{zap.String("type", string(evt.Type)), zap.Stringer("entity", evt.Entity)}
		switch data := evt.Data.(type) {
		case error:
			// the system that failed already warned
			s.log.Debug("event", append(fields, zap.Error(data))...)
			continue
		case *magnet.Source:
			fields = append(fields, zap.String("source", data.Name), zap.Int("regions", len(data.Regions())))
		case nil:
		default:
			fields = append(fields, zap.Any("data", data))
		}
		s.log.Info("event", fields...)
	}
}
