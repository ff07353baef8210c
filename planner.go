package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

var ErrPlannerClosed = errors.New("planner is closed")

const defaultHistory = 50

const (
	stateIdle     = "idle"
	statePlanning = "planning"
	stateClosed   = "closed"
)

type Event struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
}

var bogusTimestamp *string

func makeTimeBogus() {
	bogus := "bogustime"
	bogusTimestamp = &bogus
}

func NewEvent(event string) Event {
	ev := Event{
		Event: event,
	}

	if bogusTimestamp == nil {
		ev.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	} else {
		ev.Timestamp = *bogusTimestamp
	}

	return ev
}

// Decision is the outcome of one window: days [Start, End) with Off taken
// off and Profit earned on the rest.
type Decision struct {
	Plan   string  `json:"plan"`
	Window int     `json:"window"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Off    int     `json:"off"`
	Profit float64 `json:"profit"`
}

// Planner schedules a stream of daily revenues one day at a time. The open
// window is buffered in a deque and decided as soon as it holds K days;
// Close decides whatever partial window is left.
type Planner struct {
	Name   string
	K      int
	Events *Deque[Event]

	fsm     *fsm.FSM
	broker  *Broker
	history int
	window  *Deque[float64]
	work    []bool
	profit  float64
	windows int
}

func NewPlanner(name string, k, history int, broker *Broker) (*Planner, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidInterval, k)
	}
	if history < 1 {
		history = defaultHistory
	}

	p := Planner{
		Name:    name,
		K:       k,
		Events:  NewDeque[Event](min(history, defaultHistory)),
		broker:  broker,
		history: history,
		window:  NewDeque[float64](k),
	}

	p.fsm = fsm.NewFSM(
		stateIdle,
		fsm.Events{
			{Name: "open", Src: []string{stateIdle}, Dst: statePlanning},
			{Name: "close", Src: []string{stateIdle, statePlanning}, Dst: stateClosed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				p.record(NewEvent(e.Dst))
			},
		},
	)

	p.record(NewEvent(stateIdle))
	return &p, nil
}

func (p *Planner) record(ev Event) {
	p.Events.PushBack(ev)
	for p.Events.Len() > p.history {
		p.Events.PopFront()
	}
}

func (p *Planner) State() string {
	return p.fsm.Current()
}

// Feed appends the next day's revenue.
func (p *Planner) Feed(ctx context.Context, revenue float64) error {
	if p.fsm.Is(stateClosed) {
		return ErrPlannerClosed
	}
	if math.IsNaN(revenue) || math.IsInf(revenue, 0) {
		return fmt.Errorf("%w: day %d is %v", ErrInvalidInput, len(p.work)+p.window.Len(), revenue)
	}
	if p.fsm.Is(stateIdle) {
		if err := p.fsm.Event(ctx, "open"); err != nil {
			return err
		}
	}

	p.window.PushBack(revenue)
	if p.window.Len() == p.K {
		p.decide()
	}
	return nil
}

// Close decides the trailing partial window, if any, and stops the planner.
func (p *Planner) Close(ctx context.Context) error {
	if p.fsm.Is(stateClosed) {
		return ErrPlannerClosed
	}
	if !p.window.IsEmpty() {
		p.decide()
	}
	return p.fsm.Event(ctx, "close")
}

func (p *Planner) decide() {
	off := 0
	for i := 1; i < p.window.Len(); i++ {
		if p.window.At(i) < p.window.At(off) {
			off = i
		}
	}

	d := Decision{
		Plan:   p.Name,
		Window: p.windows,
		Start:  len(p.work),
		Off:    len(p.work) + off,
	}
	for i := 0; i < p.window.Len(); i++ {
		p.work = append(p.work, i != off)
		if i != off {
			d.Profit += p.window.At(i)
		}
	}
	d.End = len(p.work)
	p.window.Clear()

	p.profit += d.Profit
	p.windows++
	if p.broker != nil {
		p.broker.Publish(d)
	}
}

// Result returns the schedule of every decided day so far.
func (p *Planner) Result() Schedule[float64] {
	return Schedule[float64]{Work: slices.Clone(p.work), Profit: p.profit}
}

func (p *Planner) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string            `json:"name"`
		K        int               `json:"k"`
		State    string            `json:"state"`
		Pending  int               `json:"pending"`
		Events   *Deque[Event]     `json:"events"`
		Schedule Schedule[float64] `json:"schedule"`
	}{p.Name, p.K, p.State(), p.window.Len(), p.Events, p.Result()})
}

// Planners holds the most recent finished planner for each plan name.
type Planners struct {
	mu      sync.Mutex
	byName  map[string]*Planner
	broker  *Broker
	history int
}

func NewPlanners(broker *Broker, history int) *Planners {
	return &Planners{
		byName:  make(map[string]*Planner),
		broker:  broker,
		history: history,
	}
}

// Run replays revenues through a fresh planner and, once it is closed,
// makes it the current planner for name.
func (ps *Planners) Run(ctx context.Context, name string, k int, revenues []float64) (*Planner, error) {
	p, err := NewPlanner(name, k, ps.history, ps.broker)
	if err != nil {
		return nil, err
	}
	for _, v := range revenues {
		if err := p.Feed(ctx, v); err != nil {
			return nil, err
		}
	}
	if err := p.Close(ctx); err != nil {
		return nil, err
	}

	ps.mu.Lock()
	ps.byName[name] = p
	ps.mu.Unlock()
	return p, nil
}

func (ps *Planners) Get(name string) *Planner {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.byName[name]
}

func (ps *Planners) MarshalJSON() ([]byte, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return json.Marshal(ps.byName)
}
