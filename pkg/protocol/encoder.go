package protocol

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/anthill/pkg/domain"
)

// Encoder writes bot responses.
type Encoder struct {
	w   io.Writer
	buf []byte
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// EncodeGo writes the bare acknowledgement token.
func (e *Encoder) EncodeGo() error {
	return e.EncodeOrders(nil)
}

// EncodeOrders writes the orders followed by "go" in a single Write call.
// Stay orders are omitted. Nothing is written if an order is invalid.
func (e *Encoder) EncodeOrders(orders domain.Orders) error {
	buf, err := AppendOrders(e.buf[:0], orders)
	if err != nil {
		return err
	}
	buf = append(buf, domain.KeywordGo...)
	buf = append(buf, '\n')
	e.buf = buf
	if _, err := e.w.Write(buf); err != nil {
		return fmt.Errorf("write orders: %w", err)
	}
	return nil
}

// AppendOrders appends one "o <row> <col> <dir>" line per order to dst, in input order.
// Stay orders are skipped.
func AppendOrders(dst []byte, orders domain.Orders) ([]byte, error) {
	for i, o := range orders {
		if o.Dir == domain.Stay {
			continue
		}
		if !o.Dir.Valid() {
			return dst, fmt.Errorf("order %d at %s: invalid direction %d", i, o.Pos, uint8(o.Dir))
		}
		dst = AppendOrder(dst, o)
	}
	return dst, nil
}

// AppendOrder appends a single order line. The direction must be a moving one.
func AppendOrder(dst []byte, o domain.Order) []byte {
	dst = append(dst, domain.KeywordOrder...)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(o.Pos.Row), 10)
	dst = append(dst, ' ')
	dst = strconv.AppendUint(dst, uint64(o.Pos.Col), 10)
	dst = append(dst, ' ', o.Dir.Letter(), '\n')
	return dst
}

// SerializeOrders returns the wire form of orders, without the trailing "go".
func SerializeOrders(orders domain.Orders) (string, error) {
	buf, err := AppendOrders(nil, orders)
	return string(buf), err
}

// ParseOrder parses a single "o <row> <col> <dir>" line.
func ParseOrder(line string) (domain.Order, error) {
	return parseOrderFields(strings.Fields(line))
}

func parseOrderFields(fields []string) (domain.Order, error) {
	if len(fields) != 4 || fields[0] != domain.KeywordOrder {
		return domain.Order{}, fmt.Errorf("%w: expected 'o <row> <col> <dir>'", domain.ErrProtocolDesync)
	}
	row, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: invalid row %q", domain.ErrProtocolDesync, fields[1])
	}
	col, err := strconv.ParseUint(fields[2], 10, 16)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: invalid col %q", domain.ErrProtocolDesync, fields[2])
	}
	dir, err := domain.ParseDirection(fields[3])
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: %w", domain.ErrProtocolDesync, err)
	}
	return domain.Pos(uint16(row), uint16(col)).Order(dir), nil
}
