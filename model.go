package main

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/kaiquegovani/tetrigo/highscore"
	"github.com/kaiquegovani/tetrigo/tetris"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenScores
	screenGameOver
)

// tickMsg is a gravity step. Ticks from an older generation are stale: the
// timer was reset by a soft drop, a lock, a pause or a new game.
type tickMsg struct {
	gen int
}

type soundMsg struct{}

const lastEventDuration = 900 * time.Millisecond

type Model struct {
	screen     Screen
	width      int
	height     int
	menuIndex  int
	themeIndex int
	config     Config
	scoresFile string
	seed       int64
	games      int64

	board  *tetris.Board
	paused bool
	gen    int

	lastEvent    string
	lastDelta    uint32
	lastEventTil time.Time

	summary  highscore.Result
	scores   highscore.Table
	scoresOK bool

	sound *SoundEngine
}

func NewModel(env Env, seed int64) Model {
	config, err := loadConfig()
	if err != nil {
		log.Warn().Err(err).Msg("load config")
	}
	path, err := scoresPath(env)
	if err != nil {
		log.Warn().Err(err).Msg("resolve high score path")
	}
	ctx, err := initAudioContext()
	if err != nil {
		log.Debug().Err(err).Msg("audio context init")
	}
	return Model{
		screen:     screenMenu,
		config:     config,
		themeIndex: themeIndexByName(config.Theme),
		scoresFile: path,
		seed:       seed,
		sound:      NewSoundEngine(ctx, config.Sound),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.screen != screenGame || m.paused || msg.gen != m.gen {
			return m, nil
		}
		m.expireEvent()
		out := m.board.Tick()
		if out.Locked {
			return m, m.afterLock(out.Lock, nil)
		}
		return m, m.gravityCmd()
	case soundMsg:
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenThemes:
			return m, m.updateThemes(msg)
		case screenScores:
			return m, m.updateScores(msg)
		case screenGameOver:
			return m, m.updateGameOver(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenScores:
		return viewScores(m)
	case screenGameOver:
		return viewGameOver(m)
	default:
		return ""
	}
}

func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// gravityCmd restarts the fall timer for the current level.
func (m *Model) gravityCmd() tea.Cmd {
	m.gen++
	return tickCmd(m.gen, tetris.FallInterval(m.board.Level()))
}

func playSound(engine *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if engine != nil {
			engine.Play(event)
		}
		return soundMsg{}
	}
}

func (m *Model) soundCmd(event SoundEvent) tea.Cmd {
	if !m.config.Sound {
		return nil
	}
	return playSound(m.sound, event)
}

// soundEventForLock picks the most notable cue for a lock.
func soundEventForLock(res tetris.LockResult) SoundEvent {
	switch {
	case res.PerfectClear:
		return SoundPerfectClear
	case res.LeveledUp():
		return SoundLevelUp
	case res.Cleared > 0:
		return SoundLine
	default:
		return SoundLock
	}
}

// intentForKey maps a key press on the game screen to a board intent.
func intentForKey(key string) (tetris.Intent, bool) {
	switch key {
	case "left", "h":
		return tetris.MoveLeft, true
	case "right", "l":
		return tetris.MoveRight, true
	case "down", "j":
		return tetris.SoftDrop, true
	case "up", "k", "x":
		return tetris.RotateCW, true
	case " ":
		return tetris.HardDrop, true
	}
	return tetris.NoOp, false
}

func (m *Model) startGame() tea.Cmd {
	seed := time.Now().UnixNano()
	if m.seed != 0 {
		seed = m.seed + m.games
	}
	m.games++
	m.board = tetris.NewBoard(rand.New(rand.NewSource(seed)))
	m.paused = false
	m.lastEvent = ""
	m.lastDelta = 0
	m.lastEventTil = time.Time{}
	m.screen = screenGame
	log.Debug().Int64("seed", seed).Msg("game start")
	if !m.board.Spawn() {
		return m.endGame()
	}
	return m.gravityCmd()
}

// afterLock reports a lock, spawns the next piece and restarts gravity.
func (m *Model) afterLock(res tetris.LockResult, extra tea.Cmd) tea.Cmd {
	log.Debug().
		Str("kind", res.Kind.String()).
		Int("cleared", res.Cleared).
		Bool("perfect", res.PerfectClear).
		Uint32("delta", res.ScoreDelta).
		Uint32("level", res.LevelAfter).
		Msg("lock")
	if res.Cleared > 0 {
		m.lastDelta = res.ScoreDelta
		m.lastEvent = "LINE CLEAR"
		if res.PerfectClear {
			m.lastEvent = "PERFECT CLEAR"
		}
		m.lastEventTil = time.Now().Add(lastEventDuration)
	}
	cmds := []tea.Cmd{extra, m.soundCmd(soundEventForLock(res))}
	if !m.board.Spawn() {
		cmds = append(cmds, m.endGame())
		return tea.Batch(cmds...)
	}
	cmds = append(cmds, m.gravityCmd())
	return tea.Batch(cmds...)
}

// endGame files the result in the high-score table and shows the summary.
func (m *Model) endGame() tea.Cmd {
	m.gen++
	m.screen = screenGameOver
	m.summary = highscore.Result{}
	if m.scoresFile != "" {
		m.summary = highscore.Record(m.scoresFile, m.board.Score(), m.board.Lines())
		if m.summary.SaveError != nil {
			log.Warn().Err(m.summary.SaveError).Str("path", m.scoresFile).Msg("save high scores")
		}
	}
	log.Info().
		Uint32("score", m.board.Score()).
		Uint32("lines", m.board.Lines()).
		Uint32("level", m.board.Level()).
		Bool("over", m.board.Over()).
		Msg("game end")
	return m.soundCmd(SoundGameOver)
}

func (m *Model) expireEvent() {
	if !m.lastEventTil.IsZero() && time.Now().After(m.lastEventTil) {
		m.lastEvent = ""
		m.lastDelta = 0
		m.lastEventTil = time.Time{}
	}
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
			return m.soundCmd(SoundMenuMove)
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			return m.soundCmd(SoundMenuMove)
		}
	case "enter":
		cmd := m.soundCmd(SoundMenuSelect)
		switch m.menuIndex {
		case 0:
			return tea.Batch(cmd, m.startGame())
		case 1:
			m.screen = screenThemes
			return cmd
		case 2:
			m.loadScores()
			m.screen = screenScores
			return cmd
		case 3:
			return tea.Quit
		}
	case "s":
		m.config.Sound = !m.config.Sound
		m.sound.SetEnabled(m.config.Sound)
		persistConfig(m.config)
	case "q", "esc", "ctrl+c":
		return tea.Quit
	}
	return nil
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "p":
		m.paused = !m.paused
		if m.paused {
			m.gen++
			return nil
		}
		return m.gravityCmd()
	case "q", "esc", "ctrl+c":
		return m.endGame()
	}
	if m.paused {
		return nil
	}
	intent, ok := intentForKey(key)
	if !ok {
		return nil
	}
	out := m.board.Apply(intent)
	if out.Locked {
		var drop tea.Cmd
		if intent == tetris.HardDrop {
			drop = m.soundCmd(SoundDrop)
		}
		return m.afterLock(out.Lock, drop)
	}
	switch intent {
	case tetris.SoftDrop:
		return m.gravityCmd()
	case tetris.RotateCW:
		if out.Moved {
			return m.soundCmd(SoundRotate)
		}
	case tetris.MoveLeft, tetris.MoveRight:
		if out.Moved {
			return m.soundCmd(SoundMove)
		}
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.themeIndex > 0 {
			m.themeIndex--
			return m.soundCmd(SoundMenuMove)
		}
	case "down", "j":
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
			return m.soundCmd(SoundMenuMove)
		}
	case "enter":
		m.config.Theme = themes[m.themeIndex].Name
		persistConfig(m.config)
		m.screen = screenMenu
		return m.soundCmd(SoundMenuSelect)
	case "+", "=":
		m.adjustScale(1)
	case "-", "_":
		m.adjustScale(-1)
	case "q", "esc":
		m.themeIndex = themeIndexByName(m.config.Theme)
		m.screen = screenMenu
	}
	return nil
}

func (m *Model) updateScores(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "enter":
		m.screen = screenMenu
		return m.soundCmd(SoundMenuSelect)
	}
	return nil
}

func (m *Model) updateGameOver(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		m.screen = screenMenu
		return m.soundCmd(SoundMenuSelect)
	case "r":
		return m.startGame()
	case "q", "ctrl+c":
		return tea.Quit
	}
	return nil
}

func (m *Model) loadScores() {
	m.scores, m.scoresOK = highscore.Table{}, false
	if m.scoresFile == "" {
		return
	}
	m.scores, m.scoresOK = highscore.Load(m.scoresFile)
}

func (m *Model) adjustScale(delta int) {
	scale := clampScale(m.config.Scale + delta)
	if scale != m.config.Scale {
		m.config.Scale = scale
		persistConfig(m.config)
	}
}

var menuItems = []string{
	"Start Game",
	"Themes",
	"Scores",
	"Quit",
}
