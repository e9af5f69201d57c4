package modbusctrl

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	mbserver "github.com/tbrandon/mbserver"

	"github.com/Agrid-Dev/energydash/internal/ports"
)

// Config for the Modbus controller.
type Config struct {
	DeviceID string
	Addr     string
	UnitID   byte // UnitID (Modbus slave/unit ID). Use an integer 1..247.

	Logger logrus.FieldLogger
}

type Controller struct {
	svc ports.DashboardService
	cfg Config
	log logrus.FieldLogger

	serv *mbserver.Server
}

func New(svc ports.DashboardService, cfg Config) (*Controller, error) {
	if cfg.UnitID == 0 {
		return nil, errors.New("modbus: UnitID is required (non-zero)")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:1502"
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{svc: svc, cfg: cfg, log: log.WithField("controller", "modbus")}, nil
}

// Run starts the Modbus server with handlers that apply writes immediately and
// answer reads straight from the dashboard. It blocks until ctx is canceled.
func (c *Controller) Run(ctx context.Context) error {
	serv := mbserver.NewServer()
	c.serv = serv

	// Register handlers BEFORE starting the TCP listener to avoid races inside mbserver
	// between handler registration and the server's goroutines.
	serv.RegisterFunctionHandler(1, c.readCoils)
	serv.RegisterFunctionHandler(3, func(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
		return c.readRegisters(frame, len(holdingRegisters), func(addr int) uint16 {
			return holdingRegisters[addr].read(c.svc.Get())
		})
	})
	serv.RegisterFunctionHandler(4, func(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
		perf := c.svc.Report().Performance
		return c.readRegisters(frame, len(inputRegisters), func(addr int) uint16 {
			return inputRegisters[addr](perf)
		})
	})
	serv.RegisterFunctionHandler(5, c.writeSingleCoil)
	serv.RegisterFunctionHandler(6, c.writeSingleRegister)
	serv.RegisterFunctionHandler(16, c.writeMultipleRegisters)

	// Now start listening after all handlers are registered.
	if err := serv.ListenTCP(c.cfg.Addr); err != nil {
		return fmt.Errorf("mbserver listen tcp %s: %w", c.cfg.Addr, err)
	}
	c.log.WithField("addr", c.cfg.Addr).Info("modbus listening")

	// Block until ctx.Done()
	<-ctx.Done()
	serv.Close()
	return ctx.Err()
}

// Read Coils (function 1).
func (c *Controller) readCoils(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	start := int(binary.BigEndian.Uint16(data[0:2]))
	qty := int(binary.BigEndian.Uint16(data[2:4]))
	if qty == 0 || qty > 2000 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	if start+qty > coilCount {
		return []byte{}, &mbserver.IllegalDataAddress
	}

	coils := readCoilValues(c.svc.Get())
	var packed byte
	for i := 0; i < qty; i++ {
		if coils[start+i] {
			packed |= 1 << i
		}
	}
	// response: byte count (1) + coil bytes
	return []byte{1, packed}, &mbserver.Success
}

func (c *Controller) readRegisters(frame mbserver.Framer, size int, read func(addr int) uint16) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	start := int(binary.BigEndian.Uint16(data[0:2]))
	qty := int(binary.BigEndian.Uint16(data[2:4]))
	if qty == 0 || qty > 125 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	if start+qty > size {
		return []byte{}, &mbserver.IllegalDataAddress
	}

	// Build response: byte count + register bytes
	byteCount := qty * 2
	resp := make([]byte, 1+byteCount)
	resp[0] = byte(byteCount)
	for i := 0; i < qty; i++ {
		binary.BigEndian.PutUint16(resp[1+i*2:3+i*2], read(start+i))
	}
	return resp, &mbserver.Success
}

// Write Single Coil (function 5).
func (c *Controller) writeSingleCoil(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	addr := int(binary.BigEndian.Uint16(data[0:2]))
	value := binary.BigEndian.Uint16(data[2:4])

	if addr >= coilCount {
		return []byte{}, &mbserver.IllegalDataAddress
	}

	var on bool
	switch value {
	case 0x0000:
		on = false
	case 0xFF00:
		on = true
	default:
		return []byte{}, &mbserver.IllegalDataValue
	}

	if err := writeCoil(c.svc, addr, on); err != nil {
		c.log.WithError(err).WithField("coil", addr).Warn("modbus write rejected")
		return []byte{}, &mbserver.IllegalDataValue
	}

	// echo request (address + value)
	resp := make([]byte, 4)
	copy(resp, data[0:4])
	return resp, &mbserver.Success
}

// Write Single Register (function 6).
func (c *Controller) writeSingleRegister(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	data := frame.GetData()
	if len(data) < 4 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	addr := int(binary.BigEndian.Uint16(data[0:2]))
	value := binary.BigEndian.Uint16(data[2:4])

	if ex := c.writeHolding(addr, value); ex != nil {
		return []byte{}, ex
	}

	resp := make([]byte, 4)
	copy(resp, data[0:4])
	return resp, &mbserver.Success
}

// Write Multiple Registers (function 16). Registers are applied in order; a
// rejected register stops the batch and leaves the earlier ones applied.
func (c *Controller) writeMultipleRegisters(_ *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	d := frame.GetData()
	if len(d) < 5 {
		return []byte{}, &mbserver.IllegalDataValue
	}
	start := binary.BigEndian.Uint16(d[0:2])
	quantity := binary.BigEndian.Uint16(d[2:4])
	byteCount := int(d[4])
	if byteCount != int(quantity)*2 || len(d) < 5+byteCount {
		return []byte{}, &mbserver.IllegalDataValue
	}
	if int(start)+int(quantity) > len(holdingRegisters) {
		return []byte{}, &mbserver.IllegalDataAddress
	}
	for i := 0; i < int(quantity); i++ {
		val := binary.BigEndian.Uint16(d[5+i*2 : 7+i*2])
		if ex := c.writeHolding(int(start)+i, val); ex != nil {
			return []byte{}, ex
		}
	}

	resp := make([]byte, 4)
	binary.BigEndian.PutUint16(resp[0:2], start)
	binary.BigEndian.PutUint16(resp[2:4], quantity)
	return resp, &mbserver.Success
}

func (c *Controller) writeHolding(addr int, value uint16) *mbserver.Exception {
	if addr < 0 || addr >= len(holdingRegisters) {
		return &mbserver.IllegalDataAddress
	}
	if err := holdingRegisters[addr].write(c.svc, value); err != nil {
		c.log.WithError(err).WithField("register", addr).Warn("modbus write rejected")
		return &mbserver.IllegalDataValue
	}
	return nil
}

// encodeScaled stores v*scale as a saturating signed 16-bit value.
func encodeScaled(v float64, scale float64) uint16 {
	if math.IsNaN(v) {
		return 0
	}
	r := math.Round(v * scale)
	r = math.Min(math.Max(r, math.MinInt16), math.MaxInt16)
	return uint16(int16(r))
}

func decodeScaled(u uint16, scale float64) float64 {
	return float64(int16(u)) / scale
}
