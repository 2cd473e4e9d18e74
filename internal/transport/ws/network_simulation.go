package ws

import (
	"math/rand/v2"
	"sync"
	"time"
)

// NetworkSimulation - имитация сетевых условий для отладки клиентской
// интерполяции: базовая задержка с разбросом и потеря пакетов.
// По умолчанию выключена.
type NetworkSimulation struct {
	Enabled         bool
	BaseLatency     time.Duration
	LatencyVariance time.Duration
	PacketLoss      float64 // 0.0 - 1.0
}

var simMu sync.RWMutex

// SetNetworkSimulation устанавливает параметры имитации сети
func (s *WSServer) SetNetworkSimulation(sim NetworkSimulation) {
	simMu.Lock()
	defer simMu.Unlock()
	s.netSim = sim
}

// sendSimulated отправляет сообщение с учетом имитации сетевых условий
func (s *WSServer) sendSimulated(conn *SafeWriter, v interface{}) error {
	simMu.RLock()
	sim := s.netSim
	simMu.RUnlock()

	if !sim.Enabled {
		return conn.WriteJSON(v)
	}

	if sim.PacketLoss > 0 && rand.Float64() < sim.PacketLoss {
		// Пакет "потерян"
		return nil
	}

	delay := sim.BaseLatency
	if sim.LatencyVariance > 0 {
		delay += time.Duration(rand.Int64N(int64(sim.LatencyVariance)))
	}
	if delay <= 0 {
		return conn.WriteJSON(v)
	}

	time.AfterFunc(delay, func() {
		// Ошибка отложенной записи теряется вместе с соединением
		_ = conn.WriteJSON(v)
	})
	return nil
}
