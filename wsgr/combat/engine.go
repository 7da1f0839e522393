// Copyright (C) 2018 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package combat

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/OpenWSGR/autowsgr/core/event/task"
	"github.com/OpenWSGR/autowsgr/core/fault"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/ocr"
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
	"github.com/OpenWSGR/autowsgr/wsgr/recog"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
	"github.com/pkg/errors"
)

const (
	// ErrDetourUnavailable is returned when a rule demands a detour at a
	// node that offers none. The plan is wrong; the fight flags SL.
	ErrDetourUnavailable = fault.Const("A rule demanded a detour the node does not offer")
	// ErrNoMapData is returned when a normal mode fight has no map node
	// data to track the fleet with.
	ErrNoMapData = fault.Const("Normal mode fights need map node data")
)

const (
	// doubleTapGap separates the two taps that clear result panels and
	// cut-ins. A single tap is swallowed by the animation half the time.
	doubleTapGap = 250 * time.Millisecond
	// defaultRecoveryDelay is the pause before timeout recovery probes
	// for the terminal page.
	defaultRecoveryDelay = 3 * time.Second
	// buttonConfidence is the template score the optional buttons must
	// reach before the engine clicks them.
	buttonConfidence = 0.75
)

// Flag is the final outcome of a fight.
type Flag int

const (
	// OperationSuccess means the fight ran to its end.
	OperationSuccess Flag = iota
	// DockFull means the fight stopped because a ship drop could not be
	// collected.
	DockFull
	// SL means the fight is unsalvageable and the game should be
	// restarted to abandon it.
	SL
)

func (f Flag) String() string {
	switch f {
	case OperationSuccess:
		return "success"
	case DockFull:
		return "dock full"
	case SL:
		return "SL"
	default:
		return fmt.Sprintf("Flag(%d)", int(f))
	}
}

// Report is what a fight produced: the outcome, the damage the fleet came
// back with, how many nodes it advanced, and the full event log.
type Report struct {
	Flag      Flag
	NodeCount int
	Stats     []ship.Damage
	History   *History
}

// Engine runs fights against a device. Device is required; everything else
// degrades: a nil recognizer uses the mode's default signature table, nil
// assets skip the template lookups, nil OCR and helper skip the enemy and
// drop readouts.
type Engine struct {
	Device     device.Device
	Recognizer *Recognizer
	Assets     *Assets
	OCR        ocr.Engine
	Helper     recog.Helper

	// MapDir holds the per-map node data files, named chapter-map.yaml.
	MapDir string
	// Maps overrides MapDir with preloaded node data.
	Maps *plan.MapData

	// RecoveryDelay overrides the pause before timeout recovery. Zero
	// means the default 3 seconds.
	RecoveryDelay time.Duration
}

func (e *Engine) recoveryDelay() time.Duration {
	if e.RecoveryDelay > 0 {
		return e.RecoveryDelay
	}
	return defaultRecoveryDelay
}

// verdict is what a phase decision tells the fight loop to do next.
type verdict int

const (
	fightContinue verdict = iota
	fightEnd
	fightDockFull
	fightSL
)

// fight is the state of one engagement.
type fight struct {
	e        *Engine
	rec      *Recognizer
	plan     *plan.Plan
	table    Table
	terminal Phase
	tracker  *Tracker
	hist     *History

	phase           Phase
	prev            Phase
	lastAction      string
	node            string
	nodeCount       int
	stats           []ship.Damage
	formationByRule int
	enemies         map[ship.Class]int
	enemyFormation  string
	grade           string
	// screen is the screenshot that produced the current phase; decisions
	// read it rather than racing the device for a fresh one.
	screen *vision.Screen
}

// Fight runs one engagement to its end and reports how it went. Pass the
// fleet's damage states if they are known; otherwise the fleet is assumed
// healthy until the first result panel is read.
//
// On a hard failure the error is returned together with the partial
// report, so callers keep the history and can decide whether to restart.
func (e *Engine) Fight(ctx context.Context, p *plan.Plan, initialStats []ship.Damage) (*Report, error) {
	if e.Device == nil {
		return nil, errors.New("combat engine has no device")
	}
	rec := e.Recognizer
	if rec == nil {
		rec = NewRecognizer(p.Mode)
	}
	f := &fight{
		e:        e,
		rec:      rec,
		plan:     p,
		table:    TableFor(p.Mode),
		terminal: Terminal(p.Mode),
		hist:     &History{},
		phase:    Start,
		node:     "0",
		stats:    make([]ship.Damage, ship.Slots),
	}
	copy(f.stats, initialStats)
	if p.Mode == plan.Normal {
		f.lastAction = "yes"
		maps := e.Maps
		if maps == nil && e.MapDir != "" {
			var err error
			maps, err = plan.LoadMap(plan.MapPath(e.MapDir, p.Chapter, p.Map))
			if err != nil {
				return nil, err
			}
		}
		if maps == nil {
			return nil, log.Err(ctx, ErrNoMapData, "")
		}
		var icons []*vision.Template
		if e.Assets != nil {
			icons = e.Assets.FleetIcons
		}
		f.tracker = NewTracker(maps, icons)
	}
	log.I(ctx, "Fighting %v in %v mode", p.Name, p.Mode)
	return f.run(ctx)
}

func (f *fight) run(ctx context.Context) (*Report, error) {
	for {
		if err := task.StopReason(ctx); err != nil {
			return f.report(SL), err
		}
		phase, err := f.updateState(ctx)
		if timeout, ok := err.(*RecognitionTimeout); ok {
			recovered, rerr := f.recover(ctx, timeout)
			if rerr != nil {
				return f.report(SL), rerr
			}
			if !recovered {
				log.W(ctx, "Recovery found no known screen, flagging SL")
				return f.report(SL), nil
			}
			phase = f.terminal
		} else if err != nil {
			return f.report(SL), err
		}
		v, err := f.decide(ctx, phase)
		if err != nil {
			return f.report(SL), err
		}
		switch v {
		case fightEnd:
			return f.report(OperationSuccess), nil
		case fightDockFull:
			return f.report(DockFull), nil
		case fightSL:
			return f.report(SL), nil
		}
	}
}

func (f *fight) report(flag Flag) *Report {
	stats := make([]ship.Damage, len(f.stats))
	copy(stats, f.stats)
	return &Report{Flag: flag, NodeCount: f.nodeCount, Stats: stats, History: f.hist}
}

// recover probes for the terminal page after a recognition timeout. Slow
// frames blow through successor timeouts mid-sortie, but the common case
// is a fight that ended unseen.
func (f *fight) recover(ctx context.Context, cause *RecognitionTimeout) (bool, error) {
	log.W(ctx, "Combat recognition timed out (%v), probing for %v", cause, f.terminal)
	if err := sleep(ctx, f.e.recoveryDelay()); err != nil {
		return false, err
	}
	s, err := f.e.Device.Screenshot(ctx)
	if err != nil {
		return false, err
	}
	_, ok := f.rec.IdentifyCurrent(s, []Candidate{{Phase: f.terminal}})
	if ok {
		f.prev, f.phase, f.screen = f.phase, f.terminal, s
	}
	return ok, nil
}

// updateState waits for the next phase and refreshes everything the
// decision will read: the node assignment, the enemy readout, the result
// readout.
func (f *fight) updateState(ctx context.Context) (Phase, error) {
	candidates, err := f.table.Resolve(f.phase, f.lastAction)
	if err != nil {
		return 0, err
	}
	phase, screen, err := f.rec.WaitForPhase(ctx, f.e.Device, candidates, f.pollAction())
	if err != nil {
		return 0, err
	}
	f.prev, f.phase, f.screen = f.phase, phase, screen
	if err := f.afterMatch(ctx, phase, screen); err != nil {
		return 0, err
	}
	return phase, nil
}

func (f *fight) pollAction() PollAction {
	switch {
	case f.plan.Mode == plan.Normal && (f.phase == Proceed || f.phase == FightCondition || f.lastAction == "detour"):
		return f.movePoll
	case f.plan.Mode == plan.Battle && f.phase == Proceed:
		return f.battlePoll
	}
	return nil
}

// movePoll keeps node movement going: it taps the speed-up spot, refreshes
// the node tracker, and clears the resource popups that pause the fleet.
func (f *fight) movePoll(ctx context.Context) error {
	if err := f.click(ctx, speedUpTap); err != nil {
		return err
	}
	s, err := f.e.Device.Screenshot(ctx)
	if err != nil {
		return err
	}
	if f.tracker != nil {
		f.node = f.tracker.Update(s)
	}
	if f.e.Assets != nil && f.e.Assets.ResourceConfirm != nil {
		if d := vision.Find(s, f.e.Assets.ResourceConfirm, vision.FullScreen, buttonConfidence); d != nil {
			log.I(ctx, "Dismissing resource popup")
			return f.click(ctx, d.Center)
		}
	}
	return nil
}

func (f *fight) battlePoll(ctx context.Context) error {
	return f.click(ctx, battleSpeedUpTap)
}

func (f *fight) afterMatch(ctx context.Context, phase Phase, screen *vision.Screen) error {
	switch phase {
	case SpotEnemy, Formation, FightCondition:
		if f.tracker != nil {
			s, err := f.e.Device.Screenshot(ctx)
			if err != nil {
				return err
			}
			f.node = f.tracker.Update(s)
			log.D(ctx, "Fleet at node %v", f.node)
		}
	}
	switch phase {
	case SpotEnemy:
		f.readEnemy(ctx, screen)
	case Result:
		f.readResult(ctx, screen)
	}
	return nil
}

// readEnemy fills in the enemy composition and formation, tolerating
// recognizer failures: missing readouts just mean no rule will match.
func (f *fight) readEnemy(ctx context.Context, screen *vision.Screen) {
	f.enemies, f.enemyFormation = nil, ""
	if f.e.Helper != nil {
		classes, err := f.e.Helper.RecognizeEnemy(ctx, EnemyCrops(screen, f.plan.Mode))
		if err != nil {
			log.W(ctx, "Enemy recognition failed: %v", err)
		} else {
			f.enemies = ship.Count(classes)
			log.I(ctx, "Enemy fleet: %v", f.enemies)
		}
	}
	if f.e.OCR != nil {
		t, err := f.e.OCR.RecognizeSingle(ctx, screen.Crop(formationROI), FormationAllowlist)
		switch {
		case err == nil:
			f.enemyFormation = t.Text
			log.I(ctx, "Enemy formation: %v", t.Text)
		case errors.Cause(err) != ocr.ErrNoText:
			log.W(ctx, "Formation recognition failed: %v", err)
		}
	}
}

func (f *fight) readResult(ctx context.Context, screen *vision.Screen) {
	f.grade = ""
	if f.e.Assets != nil {
		f.grade = DetectGrade(screen, f.e.Assets.Grades)
	}
	f.stats = ResultDamages(screen)
	log.I(ctx, "Battle result: grade=%q fleet=%v", f.grade, f.stats)
}

func (f *fight) decide(ctx context.Context, phase Phase) (verdict, error) {
	if phase == f.terminal {
		log.I(ctx, "Fleet returned to the %v", phase)
		f.record(Event{Phase: phase, Action: "return"})
		return fightEnd, nil
	}
	switch phase {
	case Proceed:
		return f.decideProceed(ctx)
	case FightCondition:
		return f.decideFightCondition(ctx)
	case SpotEnemy:
		return f.decideSpotEnemy(ctx)
	case Formation:
		return f.decideFormation(ctx)
	case MissileAnimation:
		return f.decideMissileAnimation(ctx)
	case FightPeriod:
		return f.decideFightPeriod(ctx)
	case NightPrompt:
		return f.decideNightPrompt(ctx)
	case Result:
		return f.decideResult(ctx)
	case GetShip:
		return f.decideGetShip(ctx)
	case FlagshipSevere:
		return f.decideFlagshipSevere(ctx)
	}
	return 0, errors.Errorf("phase %v cannot be decided in %v mode", phase, f.plan.Mode)
}

func (f *fight) record(e Event) {
	if f.tracker != nil {
		e.Node = f.node
	}
	f.hist.append(e)
}

func (f *fight) click(ctx context.Context, at f64.Point) error {
	return f.e.Device.Click(ctx, at.X, at.Y)
}

func (f *fight) doubleTap(ctx context.Context, at f64.Point) error {
	if err := f.click(ctx, at); err != nil {
		return err
	}
	if err := sleep(ctx, doubleTapGap); err != nil {
		return err
	}
	return f.click(ctx, at)
}

// decideProceed answers the continue prompt. The fleet only advances when
// the node says to and every ship is under its damage threshold.
func (f *fight) decideProceed(ctx context.Context) (verdict, error) {
	d := f.plan.Node(f.node)
	if d.Proceed && ship.CheckBlood(f.stats, d.ProceedStop.Thresholds()) {
		f.nodeCount++
		f.lastAction = "yes"
		log.I(ctx, "Proceeding past node %v (%d advanced)", f.node, f.nodeCount)
		if err := f.click(ctx, proceedYes); err != nil {
			return 0, err
		}
	} else {
		f.lastAction = "no"
		log.I(ctx, "Withdrawing at node %v", f.node)
		if err := f.click(ctx, proceedNo); err != nil {
			return 0, err
		}
	}
	f.record(Event{Phase: Proceed, Action: f.lastAction})
	return fightContinue, nil
}

func (f *fight) decideFightCondition(ctx context.Context) (verdict, error) {
	n := f.plan.FightCondition
	if err := f.click(ctx, fightConditionAt(n)); err != nil {
		return 0, err
	}
	f.lastAction = ""
	f.record(Event{Phase: FightCondition, Action: strconv.Itoa(n)})
	return fightContinue, nil
}

// decideSpotEnemy is the heart of a fight: retreat, detour or engage,
// following the node's rules against what the recognizers read.
func (f *fight) decideSpotEnemy(ctx context.Context) (verdict, error) {
	d := f.plan.Node(f.node)
	if !f.plan.Selected(f.node) {
		log.I(ctx, "Node %v is not selected, retreating", f.node)
		return f.retreat(ctx)
	}
	var detour *vision.Detection
	if f.e.Assets != nil && f.e.Assets.Detour != nil {
		detour = vision.Find(f.screen, f.e.Assets.Detour, vision.FullScreen, buttonConfidence)
	}
	wantDetour := detour != nil && d.Detour
	switch action := d.Evaluate(f.enemies, f.enemyFormation); action.Kind {
	case plan.Retreat:
		log.I(ctx, "Rules retreat from %v at node %v", f.enemies, f.node)
		return f.retreat(ctx)
	case plan.Detour:
		if detour == nil {
			return 0, log.Errf(ctx, ErrDetourUnavailable, "Node %v", f.node)
		}
		wantDetour = true
	case plan.SetFormation:
		f.formationByRule = action.Formation
	}
	if wantDetour {
		log.I(ctx, "Detouring around node %v", f.node)
		if err := f.click(ctx, detour.Center); err != nil {
			return 0, err
		}
		f.lastAction = "detour"
		f.record(Event{Phase: SpotEnemy, Action: "detour", Enemies: f.enemies, Formation: f.enemyFormation})
		return fightContinue, nil
	}
	if d.LongMissileSupport {
		var support *vision.Detection
		if f.e.Assets != nil && f.e.Assets.MissileSupport != nil {
			support = vision.Find(f.screen, f.e.Assets.MissileSupport, vision.FullScreen, buttonConfidence)
		}
		if support == nil {
			log.W(ctx, "Missile support toggle not found at node %v", f.node)
		} else if err := f.click(ctx, support.Center); err != nil {
			return 0, err
		}
	}
	if err := f.click(ctx, enterFightButton); err != nil {
		return 0, err
	}
	f.lastAction = "fight"
	f.record(Event{Phase: SpotEnemy, Action: "fight", Enemies: f.enemies, Formation: f.enemyFormation})
	return fightContinue, nil
}

func (f *fight) retreat(ctx context.Context) (verdict, error) {
	if err := f.click(ctx, retreatButton); err != nil {
		return 0, err
	}
	f.lastAction = "retreat"
	f.record(Event{Phase: SpotEnemy, Action: "retreat", Enemies: f.enemies, Formation: f.enemyFormation})
	return fightEnd, nil
}

func (f *fight) decideFormation(ctx context.Context) (verdict, error) {
	d := f.plan.Node(f.node)
	if f.lastAction == "detour" && d.SLWhenDetourFails {
		log.W(ctx, "Detour at node %v did not advance, flagging SL", f.node)
		f.record(Event{Phase: Formation, Action: "SL"})
		return fightSL, nil
	}
	var pick int
	if f.prev == SpotEnemy {
		if f.formationByRule != 0 {
			pick = f.formationByRule
			f.formationByRule = 0
		} else {
			pick = d.Formation
		}
	} else {
		// The sighting stage was skipped, so no rules ran.
		if d.SLWhenSpotEnemyFails {
			log.W(ctx, "Sighting at node %v was skipped, flagging SL", f.node)
			f.record(Event{Phase: Formation, Action: "SL"})
			return fightSL, nil
		}
		pick = d.SpotFailFormation()
	}
	if err := f.click(ctx, formationAt(pick)); err != nil {
		return 0, err
	}
	f.lastAction = strconv.Itoa(pick)
	f.record(Event{Phase: Formation, Action: f.lastAction})
	return fightContinue, nil
}

func (f *fight) decideMissileAnimation(ctx context.Context) (verdict, error) {
	if err := f.doubleTap(ctx, missileSkipTap); err != nil {
		return 0, err
	}
	f.record(Event{Phase: MissileAnimation, Action: "skip"})
	return fightContinue, nil
}

func (f *fight) decideFightPeriod(ctx context.Context) (verdict, error) {
	d := f.plan.Node(f.node)
	if d.SLWhenEnterFight && f.prev != NightPrompt {
		log.W(ctx, "Node %v flags SL on battle entry", f.node)
		f.record(Event{Phase: FightPeriod, Action: "SL"})
		return fightSL, nil
	}
	f.record(Event{Phase: FightPeriod})
	return fightContinue, nil
}

func (f *fight) decideNightPrompt(ctx context.Context) (verdict, error) {
	d := f.plan.Node(f.node)
	at, action := nightNo, "no"
	if d.Night {
		at, action = nightYes, "yes"
	}
	if err := f.click(ctx, at); err != nil {
		return 0, err
	}
	f.lastAction = action
	f.record(Event{Phase: NightPrompt, Action: action})
	return fightContinue, nil
}

func (f *fight) decideResult(ctx context.Context) (verdict, error) {
	// The first tap clears the grade animation, the second leaves the
	// panel.
	if err := f.doubleTap(ctx, resultTap); err != nil {
		return 0, err
	}
	stats := make([]ship.Damage, len(f.stats))
	copy(stats, f.stats)
	f.record(Event{Phase: Result, Grade: f.grade, Stats: stats})
	return fightContinue, nil
}

func (f *fight) decideGetShip(ctx context.Context) (verdict, error) {
	if f.e.Assets != nil && f.e.Assets.DockFull != nil {
		if vision.Find(f.screen, f.e.Assets.DockFull, vision.FullScreen, buttonConfidence) != nil {
			log.W(ctx, "The dock is full")
			f.record(Event{Phase: GetShip, Action: "dock full"})
			return fightDockFull, nil
		}
	}
	name := ""
	if f.e.OCR != nil {
		crop := f.screen.Crop(shipNameROI)
		if f.e.Helper != nil {
			// The name row height depends on the drop card; cut the crop
			// to the first located text row.
			switch spans, err := f.e.Helper.Locate(ctx, crop); {
			case err != nil:
				log.W(ctx, "Name row location failed: %v", err)
			case len(spans) > 0:
				crop = rowCrop(crop, spans[0])
			}
		}
		t, err := f.e.OCR.RecognizeSingle(ctx, crop, "")
		switch {
		case err == nil:
			name = t.Text
			log.I(ctx, "New ship: %v", name)
		case errors.Cause(err) != ocr.ErrNoText:
			log.W(ctx, "Ship name recognition failed: %v", err)
		}
	}
	if err := f.click(ctx, getShipTap); err != nil {
		return 0, err
	}
	f.record(Event{Phase: GetShip, Action: "collect", Ship: name})
	return fightContinue, nil
}

// rowCrop cuts the screen to the pixel rows of the given span. Spans that
// fall outside the screen leave it whole.
func rowCrop(s *vision.Screen, span recog.RowSpan) *vision.Screen {
	if span.Start < 0 || span.End > s.Height() || span.Start >= span.End {
		return s
	}
	return s.Rows(span.Start, span.End)
}

func (f *fight) decideFlagshipSevere(ctx context.Context) (verdict, error) {
	at := flagshipConfirmFallback
	if f.e.Assets != nil && f.e.Assets.FlagshipConfirm != nil {
		if d := vision.Find(f.screen, f.e.Assets.FlagshipConfirm, vision.FullScreen, buttonConfidence); d != nil {
			at = d.Center
		}
	}
	if err := f.click(ctx, at); err != nil {
		return 0, err
	}
	log.W(ctx, "Flagship severely damaged, ending the fight")
	f.record(Event{Phase: FlagshipSevere, Action: "confirm"})
	return fightEnd, nil
}
