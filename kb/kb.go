package kb

import (
    "errors"
    "fmt"
    "sort"
    "sync"

    "github.com/rogercaminal/nec2-antenna-simulator/model"
)

var (
    ErrScenarioExists   = errors.New("scenario already exists")
    ErrScenarioNotFound = errors.New("scenario not found")
    ErrBadScenario      = errors.New("bad scenario")
)

// EventType indicates what kind of change happened in the catalog.
type EventType int

const (
    EventScenarioAdded EventType = iota
    EventScenarioRemoved
)

// Event is emitted to subscribers when the catalog changes.
type Event struct {
    Type     EventType
    Scenario model.Scenario
}

// Catalog is an in-memory, thread-safe store of named antenna scenarios.
type Catalog struct {
    mu sync.RWMutex

    scenarios map[string]*model.Scenario

    subs []func(Event)
}

// NewCatalog constructs an empty catalog.
func NewCatalog() *Catalog {
    return &Catalog{
        scenarios: make(map[string]*model.Scenario),
    }
}

// Add stores a new scenario under its name. It returns an error if the
// scenario is nil or nameless, or if the name is already taken.
func (c *Catalog) Add(sc *model.Scenario) error {
    if sc == nil {
        return fmt.Errorf("%w: nil", ErrBadScenario)
    }
    if sc.Name == "" {
        return fmt.Errorf("%w: empty name", ErrBadScenario)
    }

    c.mu.Lock()
    if _, exists := c.scenarios[sc.Name]; exists {
        c.mu.Unlock()
        return fmt.Errorf("%w: %q", ErrScenarioExists, sc.Name)
    }
    // store pointer so that callers can keep refining a scenario in place
    c.scenarios[sc.Name] = sc
    event := Event{
        Type:     EventScenarioAdded,
        Scenario: *sc, // copy for safety
    }
    subs := append([]func(Event){}, c.subs...)
    c.mu.Unlock()

    // Notify subscribers outside the lock to avoid deadlocks.
    for _, sub := range subs {
        sub(event)
    }
    return nil
}

// Get returns the scenario with the given name, or nil if not found.
func (c *Catalog) Get(name string) *model.Scenario {
    c.mu.RLock()
    defer c.mu.RUnlock()
    return c.scenarios[name]
}

// List returns a snapshot slice of all scenarios.
func (c *Catalog) List() []*model.Scenario {
    c.mu.RLock()
    defer c.mu.RUnlock()

    res := make([]*model.Scenario, 0, len(c.scenarios))
    for _, sc := range c.scenarios {
        res = append(res, sc)
    }
    return res
}

// Names returns the scenario names in sorted order.
func (c *Catalog) Names() []string {
    c.mu.RLock()
    defer c.mu.RUnlock()

    res := make([]string, 0, len(c.scenarios))
    for name := range c.scenarios {
        res = append(res, name)
    }
    sort.Strings(res)
    return res
}

// Len returns the number of stored scenarios.
func (c *Catalog) Len() int {
    c.mu.RLock()
    defer c.mu.RUnlock()
    return len(c.scenarios)
}

// Remove deletes a scenario by name and notifies subscribers.
func (c *Catalog) Remove(name string) error {
    c.mu.Lock()
    sc, ok := c.scenarios[name]
    if !ok {
        c.mu.Unlock()
        return fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
    }
    delete(c.scenarios, name)
    event := Event{
        Type:     EventScenarioRemoved,
        Scenario: *sc, // copy for safety
    }
    subs := append([]func(Event){}, c.subs...)
    c.mu.Unlock()

    // Notify subscribers outside the lock to avoid deadlocks.
    for _, sub := range subs {
        sub(event)
    }
    return nil
}

// Subscribe registers a callback for catalog events. It returns an
// unsubscribe function.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
    c.mu.Lock()
    defer c.mu.Unlock()
    c.subs = append(c.subs, fn)
    idx := len(c.subs) - 1

    return func() {
        c.mu.Lock()
        defer c.mu.Unlock()
        if idx < 0 || idx >= len(c.subs) {
            return
        }
        c.subs = append(c.subs[:idx], c.subs[idx+1:]...)
        idx = -1
    }
}
