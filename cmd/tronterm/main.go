// tronterm 在终端里本地对战：两名玩家共用一个键盘，其余槽位按规则直行
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"lightcycle/tron"
)

const (
	ticksPerSecond = 60
	sampleRate     = beep.SampleRate(44100)
)

type Term struct {
	screen tcell.Screen
	game   *tron.Game

	// 本地两名玩家的槽位
	p1, p2 int

	status    string
	audioInit bool
}

func NewTerm() (*Term, error) {
	game, err := tron.New(tron.DefaultConfig())
	if err != nil {
		return nil, err
	}
	p1, err := game.Join()
	if err != nil {
		return nil, err
	}
	p2, err := game.Join()
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	t := &Term{screen: screen, game: game, p1: p1, p2: p2}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		// 没有声音也能玩；提示放进状态栏，避免写花屏幕
		t.status = fmt.Sprintf("no audio: %v", err)
	} else {
		t.audioInit = true
	}
	return t, nil
}

func (t *Term) playCrash() {
	if !t.audioInit {
		return
	}
	tone, err := generators.SineTone(sampleRate, 220)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(80*time.Millisecond), tone))
}

func (t *Term) turn(right bool, slot int) {
	if err := t.game.Turn(right, slot); err != nil {
		if errors.Is(err, tron.ErrTrailCapacityExceeded) {
			t.status = fmt.Sprintf("P%d trail is full", slot+1)
			return
		}
		t.status = err.Error()
	}
}

// handleInput 返回 false 表示退出
func (t *Term) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			t.turn(false, t.p1)
		case tcell.KeyRight:
			t.turn(true, t.p1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'a':
				t.turn(false, t.p2)
			case 'd':
				t.turn(true, t.p2)
			case 'r':
				t.game.Reset()
				t.status = "reset"
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Term) update() {
	res := t.game.Tick()
	if len(res.Deaths) > 0 {
		t.playCrash()
		t.status = fmt.Sprintf("slot %v down", res.Deaths)
	}
	if res.RoundReset {
		t.status = fmt.Sprintf("round %d", t.game.Round())
	}
}

func (t *Term) draw() {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	v := viewport{cols: cols, rows: rows - 1, size: t.game.Config().ArenaSize}

	for _, e := range t.game.Render() {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(e.Color.R), int32(e.Color.G), int32(e.Color.B)))
		for _, seg := range e.Segments {
			v.rasterize(seg, func(x, y int) {
				t.screen.SetContent(x, y, '█', nil, style)
			})
		}
		if x, y, ok := v.cell(e.Head); ok {
			t.screen.SetContent(x, y, '●', nil, style.Reverse(true))
		}
	}

	line := fmt.Sprintf(" round %d  alive %d  restart %d/%d  %s  [←/→] P1  [a/d] P2  [r] reset  [q] quit",
		t.game.Round(), t.game.AliveCount(), t.game.RestartTimer(), t.game.Config().RestartDelay, t.status)
	for i, r := range []rune(line) {
		if i >= cols {
			break
		}
		t.screen.SetContent(i, rows-1, r, nil, tcell.StyleDefault.Reverse(true))
	}
	t.screen.Show()
}

func (t *Term) run() {
	ticker := time.NewTicker(time.Second / ticksPerSecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- t.screen.PollEvent()
		}
	}()

	// 输入与 Tick 在同一个协程里串行处理
	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}
		case <-ticker.C:
			t.update()
			t.draw()
		}
	}
}

func (t *Term) cleanup() {
	if t.audioInit {
		speaker.Close()
	}
	t.screen.Fini()
}

func main() {
	term, err := NewTerm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer term.cleanup()

	term.run()
}
