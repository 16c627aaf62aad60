package adc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// DefaultBaudRate is the baud rate of the ADC bridge firmware.
const DefaultBaudRate = 115200

var (
	ErrConnected    = errors.New("already connected")
	ErrNotConnected = errors.New("not connected")
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial reads conversions streamed by an ADC bridge, one decimal code per line.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	samples   chan uint16
	done      chan struct{}
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// NewSerial creates a serial source with the specified port, baud rate, and buffer size.
func NewSerial(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:     port,
		baudRate: baudRate,
		bufSize:  bufSize,
		samples:  make(chan uint16, bufSize),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Ports returns a list of available serial ports. USB ports are described by
// their product name and VID:PID.
func Ports() ([]Port, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, p := range ports {
		result = append(result, Port{
			Name:        p.Name,
			Description: describePort(p),
		})
	}

	return result, nil
}

func describePort(p *enumerator.PortDetails) string {
	if !p.IsUSB {
		return p.Name
	}
	if p.Product != "" {
		return fmt.Sprintf("%s %s:%s", p.Product, p.VID, p.PID)
	}
	return fmt.Sprintf("USB %s:%s", p.VID, p.PID)
}

// Connect opens the serial port and starts reading conversions.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return ErrConnected
	}

	port, err := serial.Open(d.port, &serial.Mode{
		BaudRate: d.baudRate,
	})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	go d.readSamples(port)

	return nil
}

// Close closes the port and waits for the samples channel to close.
func (d *Serial) Close() error {
	d.mu.Lock()
	if !d.connected {
		d.mu.Unlock()
		return nil
	}

	d.cancel()

	// Closing the port unblocks the reader
	var err error
	if d.conn != nil {
		if err = d.conn.Close(); err != nil {
			err = fmt.Errorf("failed to close serial port %s: %w", d.port, err)
		}
		d.conn = nil
	}
	d.connected = false
	d.mu.Unlock()

	<-d.done
	return err
}

// Samples returns the channel for reading conversions.
func (d *Serial) Samples() <-chan uint16 {
	return d.samples
}

// IsConnected returns whether the port is currently open.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readSamples reads lines from src and parses them into raw codes.
func (d *Serial) readSamples(src io.Reader) {
	defer close(d.done)
	defer close(d.samples)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in readSamples: %v", r)
		}
	}()

	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		code, err := parseLine(line)
		if err != nil {
			log.Printf("Failed to parse line '%s': %v", line, err)
			continue
		}

		select {
		case d.samples <- code:
		case <-d.ctx.Done():
			return
		default:
			log.Printf("Samples channel full, dropping sample")
		}
	}

	if err := scanner.Err(); err != nil && d.ctx.Err() == nil {
		log.Printf("Error reading from serial port: %v", err)
	}
}

// parseLine parses a line from the bridge into a raw code.
// Codes beyond the converter's range are passed through untouched.
func parseLine(line string) (uint16, error) {
	code, err := strconv.ParseUint(line, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid code: %w", err)
	}
	return uint16(code), nil
}
