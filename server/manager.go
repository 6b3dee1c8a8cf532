package server

import (
	"errors"
	"sort"
	"sync"
)

// DefaultRoomID 未指定房间时使用
const DefaultRoomID = "room-1"

// RoomManager 管理多个房间的生命周期
type RoomManager struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	opts  RoomOptions
}

var (
	defaultManager *RoomManager
	once           sync.Once
)

// NewRoomManager 所有新房间共用 opts
func NewRoomManager(opts RoomOptions) (*RoomManager, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &RoomManager{rooms: make(map[string]*Room), opts: opts}, nil
}

// ErrManagerInitialized 单例已被创建，新参数不会生效
var ErrManagerInitialized = errors.New("room manager already initialized")

// InitRoomManager 以给定参数初始化单例；必须在第一次 GetRoomManager 之前调用
func InitRoomManager(opts RoomOptions) error {
	m, err := NewRoomManager(opts)
	if err != nil {
		return err
	}
	applied := false
	once.Do(func() {
		defaultManager = m
		applied = true
	})
	if !applied {
		return ErrManagerInitialized
	}
	return nil
}

// GetRoomManager 单例房间管理器（未初始化时使用默认参数）
func GetRoomManager() *RoomManager {
	once.Do(func() {
		defaultManager = &RoomManager{rooms: make(map[string]*Room), opts: DefaultRoomOptions()}
	})
	return defaultManager
}

// GetOrCreateRoom 获取或创建房间，并确保开始 Tick
func (m *RoomManager) GetOrCreateRoom(id string) (*Room, error) {
	if id == "" {
		id = DefaultRoomID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		var err error
		r, err = NewRoom(id, m.opts)
		if err != nil {
			return nil, err
		}
		m.rooms[id] = r
		r.StartTicker()
		Log.Infow("room created", "room", id, "tps", m.opts.TicksPerSecond)
	}
	return r, nil
}

// Room 查找已有房间
func (m *RoomManager) Room(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

// RoomIDs 按字典序返回所有房间
func (m *RoomManager) RoomIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StopAll 停止全部房间（进程退出时调用）
func (m *RoomManager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.rooms {
		r.Stop()
		delete(m.rooms, id)
	}
}
