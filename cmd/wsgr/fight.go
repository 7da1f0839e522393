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

package main

import (
	"context"
	"flag"
	"strconv"
	"strings"
	"time"

	"github.com/OpenWSGR/autowsgr/core/app"
	"github.com/OpenWSGR/autowsgr/core/event/task"
	"github.com/OpenWSGR/autowsgr/core/log"
	"github.com/OpenWSGR/autowsgr/core/os/android"
	"github.com/OpenWSGR/autowsgr/core/os/android/adb"
	"github.com/OpenWSGR/autowsgr/core/os/flock"
	"github.com/OpenWSGR/autowsgr/core/os/shell"
	"github.com/OpenWSGR/autowsgr/core/text"
	"github.com/OpenWSGR/autowsgr/wsgr/combat"
	"github.com/OpenWSGR/autowsgr/wsgr/device"
	"github.com/OpenWSGR/autowsgr/wsgr/ocr"
	"github.com/OpenWSGR/autowsgr/wsgr/plan"
	"github.com/OpenWSGR/autowsgr/wsgr/recog"
	"github.com/OpenWSGR/autowsgr/wsgr/ship"
	"github.com/OpenWSGR/autowsgr/wsgr/ui"
	"github.com/pkg/errors"
)

// gameStartTimeout bounds the wait for the main page after the game
// restarts: client boot plus the login carousel.
const gameStartTimeout = 90 * time.Second

type fightVerb struct{ FightFlags }

func init() {
	verb := &fightVerb{
		FightFlags{
			Times:    1,
			DockFull: "stop",
		},
	}
	app.AddVerb(&app.Verb{
		Name:       "fight",
		ShortHelp:  "Runs combat engagements from a YAML plan",
		ShortUsage: "<plan.yaml>",
		Auto:       verb,
	})
}

func (verb *fightVerb) Run(ctx context.Context, flags flag.FlagSet) error {
	if flags.NArg() != 1 {
		app.Usage(ctx, "Exactly one plan file expected, got %d", flags.NArg())
		return nil
	}
	if verb.DockFull != "stop" && verb.DockFull != "dismantle" {
		app.Usage(ctx, "-dock-full must be stop or dismantle, got %s", verb.DockFull)
		return nil
	}

	p, err := plan.Load(flags.Arg(0))
	if err != nil {
		return log.Errf(ctx, err, "Loading the plan %v", flags.Arg(0))
	}
	if p.Mode == plan.Normal && verb.Maps == "" {
		app.Usage(ctx, "A %v plan needs the node data, pass -maps", p.Mode)
		return nil
	}

	raw, err := getADBDevice(ctx, verb.DeviceFlags)
	if err != nil {
		return err
	}
	// One automation process per device. The lock is keyed on the adb
	// serial so separate emulators can run side by side; acquisition
	// retries briefly so a relaunch can overlap its predecessor's
	// teardown. The ':' in TCP serials is not a legal path character
	// on Windows.
	m := flock.New(strings.ReplaceAll(raw.Serial(), ":", "-"))
	if err := task.Retry(ctx, 10, 500*time.Millisecond, func(context.Context) (bool, error) {
		if m.TryLock() {
			return true, nil
		}
		return false, errors.Errorf("device %v is already driven by another wsgr process", raw.Serial())
	}); err != nil {
		return err
	}
	defer m.Unlock()
	if err := unlock(ctx, raw); err != nil {
		return err
	}
	d, err := device.FromADB(ctx, raw)
	if err != nil {
		return err
	}

	engine, err := verb.engine(ctx, d)
	if err != nil {
		return err
	}

	pages := ui.StandardPages()
	for won := 0; won < verb.Times; {
		if err := task.StopReason(ctx); err != nil {
			return err
		}
		stats, err := verb.prepare(ctx, d, pages, p)
		if err != nil {
			return err
		}
		report, err := engine.Fight(ctx, p, stats)
		if err != nil {
			return err
		}
		switch report.Flag {
		case combat.OperationSuccess:
			won++
			log.I(ctx, "Engagement %d of %d done after %d nodes", won, verb.Times, report.NodeCount)
		case combat.DockFull:
			// Dismantling is not implemented yet, so both policies stop.
			if verb.DockFull == "dismantle" {
				log.W(ctx, "Dismantling is not implemented, stopping")
			}
			log.I(ctx, "The dock is full after %d engagements", won)
			return nil
		case combat.SL:
			if err := verb.restart(ctx, raw, d, pages.Registry()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (verb *fightVerb) engine(ctx context.Context, d device.Device) (*combat.Engine, error) {
	engine := &combat.Engine{Device: d, MapDir: verb.Maps}
	if verb.Assets != "" {
		assets, err := combat.LoadAssets(verb.Assets)
		if err != nil {
			return nil, log.Errf(ctx, err, "Loading assets from %v", verb.Assets)
		}
		engine.Assets = assets
	}
	if verb.OCR != "" {
		engine.OCR = &ocr.Exec{Path: verb.OCR}
	}
	if verb.Helper != "" {
		engine.Helper = &recog.Exec{Path: verb.Helper}
	}
	return engine, nil
}

// unlock turns the device screen on and dismisses the keyguard so the game
// is tappable.
func unlock(ctx context.Context, d adb.Device) error {
	ok, err := d.UnlockScreen(ctx)
	if err != nil {
		return log.Err(ctx, err, "Failed to unlock the screen")
	}
	if !ok {
		return errors.New("the screen stayed locked; remove the device credentials")
	}
	return nil
}

// prepare walks the client to the battle-preparation page for the plan's
// target and weighs anchor. It returns the fleet damages read off the
// preparation page, which seed the engine's health tracking.
func (verb *fightVerb) prepare(ctx context.Context, d device.Device, pages *ui.Graph, p *plan.Plan) ([]ship.Damage, error) {
	switch p.Mode {
	case plan.Battle:
		if err := pages.NavigateCurrent(ctx, d, ui.PageBattle); err != nil {
			return nil, err
		}
		slot, err := strconv.Atoi(p.Map.String())
		if err != nil {
			return nil, errors.Wrapf(err, "battle slot %q", p.Map)
		}
		if err := (ui.Battle{D: d}).EnterPrepare(ctx, slot); err != nil {
			return nil, err
		}
	case plan.Exercise:
		if err := pages.NavigateCurrent(ctx, d, ui.PageExercise); err != nil {
			return nil, err
		}
		rival, err := strconv.Atoi(p.Map.String())
		if err != nil {
			return nil, errors.Wrapf(err, "exercise rival %q", p.Map)
		}
		if err := (ui.Exercise{D: d}).ChallengeRival(ctx, rival); err != nil {
			return nil, err
		}
	default:
		if err := pages.NavigateCurrent(ctx, d, ui.PageMap); err != nil {
			return nil, err
		}
		sel := ui.MapSelect{D: d}
		chapter, err := strconv.Atoi(p.Chapter.String())
		if err != nil {
			return nil, errors.Wrapf(err, "chapter %q", p.Chapter)
		}
		mapID, err := strconv.Atoi(p.Map.String())
		if err != nil {
			return nil, errors.Wrapf(err, "map %q", p.Map)
		}
		if err := sel.SelectChapter(ctx, chapter); err != nil {
			return nil, err
		}
		if err := sel.SelectMap(ctx, mapID); err != nil {
			return nil, err
		}
		if err := sel.EnterPrepare(ctx); err != nil {
			return nil, err
		}
	}
	return verb.weighAnchor(ctx, d, p)
}

// weighAnchor picks the fleet, repairs what the plan wants repaired, reads
// the blood bars and starts the sortie.
func (verb *fightVerb) weighAnchor(ctx context.Context, d device.Device, p *plan.Plan) ([]ship.Damage, error) {
	prep := ui.Prepare{D: d}
	if p.Mode == plan.Normal {
		s, err := d.Screenshot(ctx)
		if err != nil {
			return nil, err
		}
		if cur, ok := prep.SelectedFleet(s); !ok || cur != p.FleetID {
			if err := prep.SelectFleet(ctx, p.FleetID); err != nil {
				return nil, err
			}
		}
		s, err = d.Screenshot(ctx)
		if err != nil {
			return nil, err
		}
		if err := prep.QuickRepair(ctx, prep.ShipDamages(s), p.RepairMode.Thresholds()); err != nil {
			return nil, err
		}
	}
	// The engine starts from the bars as they are now, post-repair.
	s, err := d.Screenshot(ctx)
	if err != nil {
		return nil, err
	}
	stats := prep.ShipDamages(s)
	if err := prep.Start(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// restart brings the client back after a forced exit: the -game component
// is relaunched on the device, or the -restart-cmd hook runs on this
// machine, then the screen is unlocked and the main page awaited.
func (verb *fightVerb) restart(ctx context.Context, raw adb.Device, d device.Device, r *ui.Registry) error {
	switch {
	case verb.Game != "":
		if err := verb.relaunch(ctx, raw); err != nil {
			return err
		}
	case verb.RestartCmd != "":
		args := text.SplitArgs(verb.RestartCmd)
		if len(args) == 0 {
			return errors.Errorf("-restart-cmd %q has no command", verb.RestartCmd)
		}
		log.I(ctx, "Running the restart hook: %v", verb.RestartCmd)
		if err := shell.Command(args[0], args[1:]...).Verbose().Run(ctx); err != nil {
			return log.Err(ctx, err, "The restart hook failed")
		}
	default:
		return errors.New("the fight was aborted by a forced exit; set -game or -restart-cmd to recover")
	}
	if err := unlock(ctx, raw); err != nil {
		return err
	}
	if _, err := ui.WaitForPage(ctx, d, r.Checker(ui.PageMain), ui.WaitOpts{
		Timeout:  gameStartTimeout,
		Target:   ui.PageMain,
		Overlays: ui.StandardOverlays(),
		Registry: r,
	}); err != nil {
		// A fresh process redoes the whole preflight from a clean adb
		// state; the client often needs the second cycle.
		log.E(ctx, "The main page did not come back: %v", err)
		return app.Restart
	}
	return nil
}

// relaunch kills the game client on the device and starts its activity
// again.
func (verb *fightVerb) relaunch(ctx context.Context, raw adb.Device) error {
	pkg, name, ok := strings.Cut(verb.Game, "/")
	if !ok {
		return errors.Errorf("-game must be package/activity, got %q", verb.Game)
	}
	if pid, err := raw.Pid(ctx, pkg); err == nil {
		log.I(ctx, "Stopping %v (pid %d)", pkg, pid)
		if err := raw.ForceStop(ctx, pkg); err != nil {
			return log.Err(ctx, err, "Failed to stop the game")
		}
	}
	log.I(ctx, "Starting %v", verb.Game)
	return raw.StartActivity(ctx, android.Activity{Package: pkg, Name: name})
}
