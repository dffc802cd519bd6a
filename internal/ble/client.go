// Package ble provides low-level BLE communication with the GAN robot.
package ble

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"tinygo.org/x/bluetooth"

	"github.com/ganrobot/ganrobot"
)

// Errors
var (
	ErrNotConnected     = errors.New("ble: not connected to device")
	ErrAlreadyConnected = errors.New("ble: already connected to a device")
	ErrDeviceNotFound   = errors.New("ble: device not found")
)

// Poll cadence while draining the robot's move queue.
const statusPollInterval = 100 * time.Millisecond

// Config identifies the robot and its characteristics.
type Config struct {
	// Name is the advertised device name, e.g. "GAN-a7f13".
	Name string

	// MoveCharacteristic is the UUID of the move command characteristic.
	MoveCharacteristic string

	// StatusCharacteristic is the UUID of the status characteristic.
	StatusCharacteristic string

	// Logger receives connection and transfer logs. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// ScanResult represents a discovered robot.
type ScanResult struct {
	Name    string
	UUID    string
	RSSI    int16
	Address bluetooth.Address
}

// Client manages the BLE connection to a GAN robot. It owns the outbound
// move sequence counter for the session; encoding itself is pure and lives
// in the ganrobot package.
type Client struct {
	adapter    *bluetooth.Adapter
	device     bluetooth.Device
	moveChar   bluetooth.DeviceCharacteristic
	statusChar bluetooth.DeviceCharacteristic

	name       string
	moveUUID   bluetooth.UUID
	statusUUID bluetooth.UUID
	log        *slog.Logger

	mu         sync.RWMutex
	connected  bool
	deviceName string
	seq        uint8

	onStatus func(ganrobot.StatusEvent)
}

// NewClient creates a BLE client for the configured robot.
func NewClient(cfg Config) (*Client, error) {
	moveUUID, err := parseCharUUID(cfg.MoveCharacteristic)
	if err != nil {
		return nil, fmt.Errorf("ble: invalid move characteristic: %w", err)
	}
	statusUUID, err := parseCharUUID(cfg.StatusCharacteristic)
	if err != nil {
		return nil, fmt.Errorf("ble: invalid status characteristic: %w", err)
	}

	adapter := bluetooth.DefaultAdapter
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("ble: failed to enable adapter: %w", err)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		adapter:    adapter,
		name:       cfg.Name,
		moveUUID:   moveUUID,
		statusUUID: statusUUID,
		log:        log,
	}, nil
}

func parseCharUUID(s string) (bluetooth.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return bluetooth.UUID{}, err
	}
	return bluetooth.NewUUID(u), nil
}

// SetStatusCallback sets the callback for decoded status notifications.
func (c *Client) SetStatusCallback(cb func(ganrobot.StatusEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStatus = cb
}

// Scan discovers nearby GAN robots within the timeout period.
func (c *Client) Scan(ctx context.Context, timeout time.Duration) ([]ScanResult, error) {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return nil, ErrAlreadyConnected
	}
	c.mu.RUnlock()

	var results []ScanResult
	var mu sync.Mutex
	seen := make(map[string]bool)

	done := make(chan struct{})

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			name := result.LocalName()
			addr := result.Address.String()

			mu.Lock()
			defer mu.Unlock()
			if seen[addr] {
				return
			}
			seen[addr] = true

			if strings.HasPrefix(strings.ToUpper(name), "GAN") {
				results = append(results, ScanResult{
					Name:    name,
					UUID:    addr,
					RSSI:    result.RSSI,
					Address: result.Address,
				})
			}
		})
		close(done)
	}()

	select {
	case <-time.After(timeout):
	case <-ctx.Done():
	}

	c.adapter.StopScan()
	<-done

	return results, nil
}

// ConnectByName scans for the configured device name and connects to it.
func (c *Client) ConnectByName(ctx context.Context, timeout time.Duration) error {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return ErrAlreadyConnected
	}
	c.mu.RUnlock()

	var target bluetooth.Address
	found := make(chan struct{})
	var foundOnce sync.Once

	c.log.Info("scanning for robot", "name", c.name)

	go func() {
		c.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if result.LocalName() == c.name {
				target = result.Address
				foundOnce.Do(func() { close(found) })
			}
		})
	}()

	select {
	case <-found:
		c.adapter.StopScan()
	case <-time.After(timeout):
		c.adapter.StopScan()
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, c.name)
	case <-ctx.Done():
		c.adapter.StopScan()
		return ctx.Err()
	}

	return c.connect(target, c.name)
}

// Connect connects to a robot from a scan result.
func (c *Client) Connect(ctx context.Context, result ScanResult) error {
	c.mu.RLock()
	if c.connected {
		c.mu.RUnlock()
		return ErrAlreadyConnected
	}
	c.mu.RUnlock()

	return c.connect(result.Address, result.Name)
}

func (c *Client) connect(addr bluetooth.Address, name string) error {
	device, err := c.adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("ble: failed to connect: %w", err)
	}

	moveChar, statusChar, err := c.findCharacteristics(device)
	if err != nil {
		device.Disconnect()
		return err
	}

	// The robot pushes queue updates on the status characteristic; decode
	// them and forward to the callback. Not all firmware notifies, so
	// RemainingMoves also supports reading on demand.
	err = statusChar.EnableNotifications(c.handleStatusNotification)
	if err != nil {
		c.log.Debug("status notifications unavailable, falling back to reads", "err", err)
	}

	c.mu.Lock()
	c.device = device
	c.moveChar = moveChar
	c.statusChar = statusChar
	c.connected = true
	c.deviceName = name
	c.mu.Unlock()

	c.log.Info("connected", "name", name)

	return nil
}

// findCharacteristics walks all services looking for the move and status
// characteristics. The robot does not document its service layout, so no
// service filter is applied.
func (c *Client) findCharacteristics(device bluetooth.Device) (moveChar, statusChar bluetooth.DeviceCharacteristic, err error) {
	services, err := device.DiscoverServices(nil)
	if err != nil {
		return moveChar, statusChar, fmt.Errorf("ble: failed to discover services: %w", err)
	}

	var haveMove, haveStatus bool
	for _, svc := range services {
		chars, err := svc.DiscoverCharacteristics(nil)
		if err != nil {
			continue
		}
		for _, ch := range chars {
			switch ch.UUID() {
			case c.moveUUID:
				moveChar = ch
				haveMove = true
			case c.statusUUID:
				statusChar = ch
				haveStatus = true
			}
		}
	}

	if !haveMove {
		return moveChar, statusChar, fmt.Errorf("ble: move characteristic %s not found", c.moveUUID)
	}
	if !haveStatus {
		return moveChar, statusChar, fmt.Errorf("ble: status characteristic %s not found", c.statusUUID)
	}
	return moveChar, statusChar, nil
}

// Disconnect disconnects from the robot.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	err := c.device.Disconnect()
	c.connected = false
	c.deviceName = ""

	return err
}

// IsConnected returns true if connected to a robot.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DeviceName returns the connected device name.
func (c *Client) DeviceName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceName
}

// Seq returns the session's outbound sequence counter: the total number of
// moves issued since connection, mod 256.
func (c *Client) Seq() uint8 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq
}

// DoMoves encodes the moves, writes the frames to the move characteristic
// in order, and blocks until the robot reports an empty move queue or ctx
// is cancelled.
func (c *Client) DoMoves(ctx context.Context, moves []ganrobot.Move) error {
	if len(moves) == 0 {
		return nil
	}

	if err := c.writeMoves(moves); err != nil {
		return err
	}

	return c.waitIdle(ctx, ganrobot.EstimateDuration(moves))
}

// DoRawCodes executes raw wire codes, validating each against the move
// table first. Used by the REPL's debug mode.
func (c *Client) DoRawCodes(ctx context.Context, codes []byte) error {
	moves := make([]ganrobot.Move, 0, len(codes))
	for _, code := range codes {
		m, err := ganrobot.MoveFromCode(code)
		if err != nil {
			return err
		}
		moves = append(moves, m)
	}
	return c.DoMoves(ctx, moves)
}

func (c *Client) writeMoves(moves []ganrobot.Move) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotConnected
	}

	frames, next, err := ganrobot.EncodeMoves(moves, c.seq)
	if err != nil {
		return err
	}

	c.log.Info("sending moves",
		"moves", ganrobot.FormatMoves(moves),
		"frames", len(frames),
		"seq", next)

	for _, frame := range frames {
		if _, err := c.moveChar.WriteWithoutResponse(frame[:]); err != nil {
			return fmt.Errorf("ble: move write failed: %w", err)
		}
	}

	c.seq = next
	return nil
}

// waitIdle sleeps through most of the estimated execution time, then polls
// the status characteristic until the robot reports an empty queue.
func (c *Client) waitIdle(ctx context.Context, estimate time.Duration) error {
	if err := sleepCtx(ctx, estimate*3/4); err != nil {
		return err
	}

	for {
		event, err := c.RemainingMoves()
		if err != nil {
			return err
		}
		if event.Kind == ganrobot.StatusIdle {
			return nil
		}
		c.log.Debug("robot busy", "remaining", event.Remaining)

		if err := sleepCtx(ctx, statusPollInterval); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RemainingMoves reads the status characteristic and decodes it. An empty
// read means the robot has nothing pending.
func (c *Client) RemainingMoves() (ganrobot.StatusEvent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return ganrobot.StatusEvent{}, ErrNotConnected
	}

	buf := make([]byte, ganrobot.FrameSize)
	n, err := c.statusChar.Read(buf)
	if err != nil {
		return ganrobot.StatusEvent{}, fmt.Errorf("ble: status read failed: %w", err)
	}
	if n == 0 {
		return ganrobot.StatusEvent{Kind: ganrobot.StatusIdle}, nil
	}

	return ganrobot.DecodeStatus(buf[:n])
}

func (c *Client) handleStatusNotification(data []byte) {
	event, err := ganrobot.DecodeStatus(data)
	if err != nil {
		c.log.Debug("dropping undecodable status frame", "err", err)
		return
	}

	c.mu.RLock()
	cb := c.onStatus
	c.mu.RUnlock()

	if cb != nil {
		cb(event)
	}
}
