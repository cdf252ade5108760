package main

import (
	"arpg-server/internal/chunks"
	"arpg-server/internal/domain"
	"arpg-server/internal/engine"
	"arpg-server/pkg/logger"
	"arpg-server/pkg/utils"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	seed := fs.Int64("seed", 0, "level seed (0 for random)")
	name := fs.String("name", "", "derive the seed from a level name")
	fs.Parse(os.Args[2:])

	cfg := engine.NewConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		fmt.Printf("Bad environment: %v\n", err)
		os.Exit(1)
	}
	switch {
	case *name != "":
		cfg.Seed = utils.StringToSeed(*name)
	case *seed != 0:
		cfg.Seed = *seed
	}

	switch os.Args[1] {
	case "render":
		// Логи не должны смешиваться с картой
		logger.InitWith(os.LookupEnv, os.Stderr)
		game, err := engine.NewService(cfg)
		if err != nil {
			fmt.Printf("Generation failed: %v\n", err)
			os.Exit(1)
		}
		defer game.Shutdown()
		fmt.Print(game.Level().Dungeon.ASCII())
	case "view":
		logger.InitWith(os.LookupEnv, io.Discard)
		if err := runViewer(cfg); err != nil {
			fmt.Printf("Viewer error: %v\n", err)
			os.Exit(1)
		}
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Map Viewer - просмотр сгенерированных уровней
Commands:
  render [-seed N]       - вывести уровень в ASCII
  view [-seed N]         - интерактивный просмотр с подгрузкой чанков
  -name <имя>            - зерно из имени уровня вместо -seed

Keys (view):
  arrows                 - двигать камеру
  p                      - путь от старта до центра камеры
  r                      - новый уровень
  q, Esc                 - выход`)
}

// pathEvent доставляет результат поиска пути в цикл событий экрана.
type pathEvent struct {
	when time.Time
	path []domain.Point
}

func (e *pathEvent) When() time.Time { return e.when }

type viewer struct {
	screen tcell.Screen
	game   *engine.GameService
	level  *engine.Level

	streamer *chunks.Streamer
	camX     int // центр камеры в клетках
	camY     int
	path     map[domain.Point]bool
	status   string
}

// ChunkLoaded и ChunkVisibility only feed the status line; drawing reads the
// streamer's visible set directly.
func (v *viewer) ChunkLoaded(c *chunks.Chunk) {
	v.status = "loaded " + c.Key()
}

func (v *viewer) ChunkVisibility(c *chunks.Chunk, visible bool) {
	if !visible {
		v.status = "hidden " + c.Key()
	}
}

func runViewer(cfg engine.Config) error {
	game, err := engine.NewService(cfg)
	if err != nil {
		return err
	}
	defer game.Shutdown()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{screen: screen, game: game}
	v.reset(game.Level())
	v.run()
	return nil
}

func (v *viewer) reset(level *engine.Level) {
	v.level = level
	v.streamer = v.game.NewStreamer(level, v)
	spawn := level.Dungeon.SpawnPoint()
	v.camX, v.camY = spawn.X, spawn.Y
	v.path = nil
	v.streamer.ForceLoad(v.camX, v.camY)
}

func (v *viewer) run() {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case now := <-ticker.C:
			tile := v.game.Config().TileSize
			v.streamer.Update(now.Sub(last), domain.PixelCenter(domain.Point{X: v.camX, Y: v.camY}, tile))
			last = now
			v.draw()
		}
	}
}

func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.camY--
		case tcell.KeyDown:
			v.camY++
		case tcell.KeyLeft:
			v.camX--
		case tcell.KeyRight:
			v.camX++
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'p':
				v.requestPath()
			case 'r':
				level, err := v.game.LoadLevel(0)
				if err != nil {
					v.status = err.Error()
					break
				}
				v.reset(level)
			}
		}
	case *pathEvent:
		v.path = make(map[domain.Point]bool, len(ev.path))
		for _, p := range ev.path {
			v.path[p] = true
		}
		if ev.path == nil {
			v.status = "no path"
		} else {
			v.status = fmt.Sprintf("path: %d steps", len(ev.path))
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// requestPath ищет путь от точки старта до клетки под камерой.
// Колбэк приходит из пула, поэтому результат возвращается через PostEvent.
func (v *viewer) requestPath() {
	start := v.level.Dungeon.SpawnPoint()
	end := domain.Point{X: v.camX, Y: v.camY}
	v.status = "searching " + end.String()
	v.level.Pathfinder.FindPath(start, end, func(path []domain.Point) {
		v.screen.PostEvent(&pathEvent{when: time.Now(), path: path})
	})
}

func (v *viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	ox, oy := v.camX-w/2, v.camY-(h-1)/2

	size := v.game.Config().ChunkSize
	for _, c := range v.streamer.Visible() {
		ch, ok := v.streamer.Chunk(c)
		if !ok {
			continue
		}
		for ly := 0; ly < size; ly++ {
			for lx := 0; lx < size; lx++ {
				x, y := ch.Layer.Origin.X+lx, ch.Layer.Origin.Y+ly
				sx, sy := x-ox, y-oy
				if sx < 0 || sy < 0 || sx >= w || sy >= h-1 {
					continue
				}
				t := ch.Layer.Tiles[ly][lx]
				if t == domain.TileEmpty {
					continue
				}
				v.screen.SetContent(sx, sy, v.level.Dungeon.Glyph(x, y), nil, tileStyle(t))
			}
		}
	}

	for p := range v.path {
		if p.X-ox >= 0 && p.Y-oy >= 0 && p.X-ox < w && p.Y-oy < h-1 {
			v.screen.SetContent(p.X-ox, p.Y-oy, '*', nil, tcell.StyleDefault.Foreground(tcell.ColorRed))
		}
	}

	// Курсор камеры
	v.screen.SetContent(v.camX-ox, v.camY-oy, '@', nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true))

	line := fmt.Sprintf("level %d seed %d | cam (%d,%d) | chunks %d/%d visible | %s",
		v.level.ID, v.level.Seed, v.camX, v.camY, len(v.streamer.Visible()), v.streamer.Loaded(), v.status)
	for i, r := range line {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, tcell.StyleDefault.Reverse(true))
	}

	v.screen.Show()
}

func tileStyle(t domain.TileType) tcell.Style {
	switch t {
	case domain.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case domain.TileGrass1, domain.TileGrass2:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case domain.TileDirt1, domain.TileDirt2, domain.TileDirt3:
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case domain.TileStone1, domain.TileStone2:
		return tcell.StyleDefault.Foreground(tcell.ColorSilver)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorYellow)
}
