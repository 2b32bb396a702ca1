package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/HaliteForager/internal/game"
	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// Conn speaks the Halite III engine protocol: line-oriented text, engine to
// bot on r and bot to engine on w.
type Conn struct {
	lr     *lineReader
	w      *bufio.Writer
	logger zerolog.Logger
}

func NewConn(r io.Reader, w io.Writer, logger zerolog.Logger) *Conn {
	return &Conn{
		lr:     newLineReader(r),
		w:      bufio.NewWriter(w),
		logger: logger.With().Str("component", "protocol").Logger(),
	}
}

// SetLogger replaces the connection's logger, used once the per-player log
// file exists.
func (c *Conn) SetLogger(logger zerolog.Logger) {
	c.logger = logger.With().Str("component", "protocol").Logger()
}

// ReadInit reads the handshake: constants, players, shipyards and the
// initial halite map.
func (c *Conn) ReadInit() (*game.Game, error) {
	raw, err := c.lr.readLine()
	if err != nil {
		return nil, fmt.Errorf("read constants: %w", err)
	}
	constants, err := game.ParseConstants([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	head, err := c.lr.readInts(2)
	if err != nil {
		return nil, fmt.Errorf("read player count: %w", unexpectedEOF(err))
	}
	numPlayers, myID := head[0], head[1]
	if numPlayers <= 0 {
		return nil, fmt.Errorf("player count %d: %w", numPlayers, ErrMalformed)
	}

	players := make([]*game.Player, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		f, err := c.lr.readInts(3)
		if err != nil {
			return nil, fmt.Errorf("read player %d: %w", i, unexpectedEOF(err))
		}
		players = append(players, game.NewPlayer(f[0], core.Position{X: f[1], Y: f[2]}))
	}

	dims, err := c.lr.readInts(2)
	if err != nil {
		return nil, fmt.Errorf("read map size: %w", unexpectedEOF(err))
	}
	width, height := dims[0], dims[1]
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("map size %dx%d: %w", width, height, ErrMalformed)
	}

	m := game.NewMap(width, height)
	for y := 0; y < height; y++ {
		row, err := c.lr.readInts(width)
		if err != nil {
			return nil, fmt.Errorf("read map row %d: %w", y, unexpectedEOF(err))
		}
		for x, h := range row {
			if err := m.SetHalite(core.Position{X: x, Y: y}, h); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
		}
	}

	g, err := game.NewGame(constants, myID, players, m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	c.logger.Info().
		Int("player_id", myID).
		Int("players", numPlayers).
		Int("width", width).
		Int("height", height).
		Int("max_turns", constants.MaxTurns).
		Msg("Handshake received")
	return g, nil
}

// SendName completes the handshake. The engine starts the turn clock once it
// reads the name.
func (c *Conn) SendName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "\n\r") {
		return fmt.Errorf("invalid bot name %q", name)
	}
	return c.writeLine(name)
}

// ReadFrame reads one turn's update and applies it to g. It returns io.EOF
// when the engine closes the stream between turns.
func (c *Conn) ReadFrame(g *game.Game) error {
	turnLine, err := c.lr.readInts(1)
	if err != nil {
		return err
	}
	turn := turnLine[0]

	updates := make([]game.PlayerUpdate, 0, len(g.Players))
	for i := 0; i < len(g.Players); i++ {
		f, err := c.lr.readInts(4)
		if err != nil {
			return core.WrapTurnError(turn, "read player", unexpectedEOF(err))
		}
		pu := game.PlayerUpdate{ID: f[0], Halite: f[3]}
		numShips, numDropoffs := f[1], f[2]
		if numShips < 0 || numDropoffs < 0 {
			return core.WrapTurnError(turn, "read player", ErrMalformed)
		}

		pu.Ships = make([]game.Ship, 0, numShips)
		for j := 0; j < numShips; j++ {
			s, err := c.lr.readInts(4)
			if err != nil {
				return core.WrapTurnError(turn, "read ship", unexpectedEOF(err))
			}
			pu.Ships = append(pu.Ships, game.Ship{ID: s[0], Pos: core.Position{X: s[1], Y: s[2]}, Halite: s[3]})
		}

		pu.Dropoffs = make([]game.Dropoff, 0, numDropoffs)
		for j := 0; j < numDropoffs; j++ {
			d, err := c.lr.readInts(3)
			if err != nil {
				return core.WrapTurnError(turn, "read dropoff", unexpectedEOF(err))
			}
			pu.Dropoffs = append(pu.Dropoffs, game.Dropoff{ID: d[0], Pos: core.Position{X: d[1], Y: d[2]}})
		}
		updates = append(updates, pu)
	}

	countLine, err := c.lr.readInts(1)
	if err != nil {
		return core.WrapTurnError(turn, "read map updates", unexpectedEOF(err))
	}
	if countLine[0] < 0 {
		return core.WrapTurnError(turn, "read map updates", ErrMalformed)
	}
	cells := make([]game.CellUpdate, 0, countLine[0])
	for i := 0; i < countLine[0]; i++ {
		u, err := c.lr.readInts(3)
		if err != nil {
			return core.WrapTurnError(turn, "read map update", unexpectedEOF(err))
		}
		cells = append(cells, game.CellUpdate{Pos: core.Position{X: u[0], Y: u[1]}, Halite: u[2]})
	}

	if err := g.ApplyFrame(turn, updates, cells); err != nil {
		return err
	}

	c.logger.Debug().
		Int("turn", turn).
		Int("map_updates", len(cells)).
		Int("ships", len(g.Me().Ships)).
		Msg("Frame applied")
	return nil
}

// SendCommands writes the turn's commands as a single line.
func (c *Conn) SendCommands(cmds []game.Command) error {
	return c.writeLine(game.EncodeCommands(cmds))
}

func (c *Conn) writeLine(s string) error {
	if _, err := c.w.WriteString(s); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
