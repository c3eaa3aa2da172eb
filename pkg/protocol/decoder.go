package protocol

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aretw0/anthill/internal/logging"
	"github.com/aretw0/anthill/pkg/domain"
	"github.com/aretw0/anthill/pkg/ports"
)

// SetupPolicy decides what happens to a malformed line in the turn-0 block.
type SetupPolicy int

const (
	// SetupLenient logs the line and skips it. The field keeps its zero value.
	SetupLenient SetupPolicy = iota
	// SetupStrict fails the decode with a *domain.ProtocolError.
	SetupStrict
)

func (p SetupPolicy) String() string {
	if p == SetupStrict {
		return "strict"
	}
	return "lenient"
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used to report skipped setup lines.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithSetupPolicy sets the policy for malformed turn-0 lines.
func WithSetupPolicy(policy SetupPolicy) Option {
	return func(d *Decoder) {
		d.setupPolicy = policy
	}
}

// Decoder reads protocol blocks from a LineSource.
type Decoder struct {
	src         ports.LineSource
	line        int
	logger      *slog.Logger
	setupPolicy SetupPolicy
}

// NewDecoder creates a Decoder reading from src.
func NewDecoder(src ports.LineSource, opts ...Option) *Decoder {
	d := &Decoder{
		src:    src,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Line returns the number of lines consumed so far, which is also the 1-based
// number of the last line returned.
func (d *Decoder) Line() int {
	return d.line
}

// ReadLine returns the next raw line. At the end of input it returns io.EOF;
// any other source failure comes back as a *domain.ProtocolError naming the line.
func (d *Decoder) ReadLine() (string, error) {
	text, err := d.src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", err
		}
		return "", &domain.ProtocolError{
			Line:   d.line + 1,
			Reason: "unreadable line",
			Err:    err,
		}
	}
	d.line++
	return text, nil
}

// next returns the next non-blank line split into fields. Running out of input
// inside a block is a desync.
func (d *Decoder) next(block string) (string, []string, error) {
	for {
		text, err := d.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", nil, &domain.ProtocolError{
					Line:   d.line,
					Reason: "input ended inside " + block,
					Err:    domain.ErrUnexpectedEOF,
				}
			}
			return "", nil, err
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		return text, fields, nil
	}
}

func (d *Decoder) desync(text, format string, args ...any) error {
	return &domain.ProtocolError{
		Line:   d.line,
		Text:   text,
		Reason: fmt.Sprintf(format, args...),
		Err:    domain.ErrProtocolDesync,
	}
}

// DecodeParameters consumes "<key> <int>" lines up to and including "ready".
// Under the lenient policy a line with extra tokens still sets its key from the
// first two; the strict policy rejects it.
func (d *Decoder) DecodeParameters() (domain.GameParameters, error) {
	var params domain.GameParameters
	for {
		text, fields, err := d.next("setup block")
		if err != nil {
			return domain.GameParameters{}, err
		}
		if fields[0] == domain.KeywordReady && len(fields) == 1 {
			return params, nil
		}

		var putErr error
		switch {
		case fields[0] == domain.KeywordReady:
			putErr = fmt.Errorf("%w: trailing tokens after %q", domain.ErrProtocolDesync, domain.KeywordReady)
		case len(fields) < 2:
			putErr = fmt.Errorf("%w: expected '<key> <value>', got %d tokens", domain.ErrProtocolDesync, len(fields))
		case len(fields) > 2 && d.setupPolicy == SetupStrict:
			putErr = fmt.Errorf("%w: expected '<key> <value>', got %d tokens", domain.ErrProtocolDesync, len(fields))
		default:
			putErr = params.Put(fields[0], fields[1])
			if putErr == nil && len(fields) > 2 {
				d.logger.Warn("ignoring trailing setup tokens", "line", d.line, "key", fields[0],
					"value", fields[1], "extra", strings.Join(fields[2:], " "))
			}
		}
		if putErr == nil {
			continue
		}

		if d.setupPolicy == SetupStrict {
			return domain.GameParameters{}, &domain.ProtocolError{
				Line:   d.line,
				Text:   text,
				Reason: "bad setup line",
				Err:    putErr,
			}
		}
		key, value := fields[0], strings.Join(fields[1:], " ")
		d.logger.Warn("skipping setup line", "line", d.line, "key", key, "value", value, "error", putErr)
		if key == domain.KeywordReady {
			return params, nil
		}
	}
}

// DecodeWorld consumes world records up to and including "go".
func (d *Decoder) DecodeWorld() (*domain.WorldState, error) {
	world := domain.NewWorldState()
	for {
		text, fields, err := d.next("turn block")
		if err != nil {
			return nil, err
		}
		if len(fields) == 1 && fields[0] == domain.KeywordGo {
			return world, nil
		}
		if err := d.applyRecord(world, text, fields); err != nil {
			return nil, err
		}
	}
}

func (d *Decoder) applyRecord(world *domain.WorldState, text string, fields []string) error {
	var arity int
	switch fields[0] {
	case domain.TagWater, domain.TagFood:
		arity = 3
	case domain.TagHill, domain.TagLiveAnt, domain.TagDeadAnt:
		arity = 4
	default:
		return d.desync(text, "unknown record tag %q", fields[0])
	}
	if len(fields) != arity {
		return d.desync(text, "record %q takes %d fields, got %d", fields[0], arity-1, len(fields)-1)
	}

	row, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return d.desync(text, "invalid row %q", fields[1])
	}
	col, err := strconv.ParseUint(fields[2], 10, 16)
	if err != nil {
		return d.desync(text, "invalid col %q", fields[2])
	}
	pos := domain.Pos(uint16(row), uint16(col))

	if arity == 3 {
		if fields[0] == domain.TagWater {
			world.AddWater(pos)
		} else {
			world.AddFood(pos)
		}
		return nil
	}

	owner, err := strconv.ParseUint(fields[3], 10, 8)
	if err != nil {
		return d.desync(text, "invalid owner %q", fields[3])
	}
	switch fields[0] {
	case domain.TagHill:
		world.AddHill(pos, uint8(owner))
	case domain.TagLiveAnt:
		world.AddLiveAnt(pos, uint8(owner))
	case domain.TagDeadAnt:
		world.AddDeadAnt(pos, uint8(owner))
	}
	return nil
}

// DecodeEnd consumes the block that follows "end": the players line, the score
// line and a final world snapshot terminated by "go".
func (d *Decoder) DecodeEnd() (*domain.WorldState, domain.Score, error) {
	text, fields, err := d.next("end block")
	if err != nil {
		return nil, domain.Score{}, err
	}
	if len(fields) != 2 || fields[0] != domain.KeywordPlayers {
		return nil, domain.Score{}, d.desync(text, "expected 'players <N>'")
	}
	players, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return nil, domain.Score{}, d.desync(text, "invalid player count %q", fields[1])
	}

	text, fields, err = d.next("end block")
	if err != nil {
		return nil, domain.Score{}, err
	}
	if fields[0] != domain.KeywordScore {
		return nil, domain.Score{}, d.desync(text, "expected 'score' keyword, got %q", fields[0])
	}
	score := domain.Score{PerPlayer: make([]uint64, 0, len(fields)-1)}
	for _, tok := range fields[1:] {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, domain.Score{}, d.desync(text, "invalid score %q", tok)
		}
		score.PerPlayer = append(score.PerPlayer, v)
	}
	if uint64(len(score.PerPlayer)) != players {
		return nil, domain.Score{}, &domain.ProtocolError{
			Line:   d.line,
			Text:   text,
			Reason: fmt.Sprintf("expected %d scores, got %d", players, len(score.PerPlayer)),
			Err:    domain.ErrScoreMismatch,
		}
	}

	world, err := d.DecodeWorld()
	if err != nil {
		return nil, domain.Score{}, err
	}
	return world, score, nil
}

// DecodeOrders consumes "o" lines up to and including "go". It reads what a bot
// writes, for transcript validation and tests.
func (d *Decoder) DecodeOrders() (domain.Orders, error) {
	orders := domain.Orders{}
	for {
		text, fields, err := d.next("orders block")
		if err != nil {
			return nil, err
		}
		if len(fields) == 1 && fields[0] == domain.KeywordGo {
			return orders, nil
		}
		order, err := parseOrderFields(fields)
		if err != nil {
			return nil, &domain.ProtocolError{Line: d.line, Text: text, Err: err}
		}
		orders = append(orders, order)
	}
}
