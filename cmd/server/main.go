package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"splatwalk/internal/assets"
	"splatwalk/internal/physics"
	"splatwalk/internal/sim"
	"splatwalk/internal/telemetry"
	"splatwalk/internal/transport/ws"
	"splatwalk/internal/world"
)

const (
	baseGravity = 9.81

	// Таймаут инициализации физики: по истечении сервер продолжает
	// работу в деградированном режиме (рендеринг без физики)
	physicsInitTimeout = 2 * time.Second

	assetLoadTimeout = 60 * time.Second
)

// physicsSetup - результат инициализации физического мира
type physicsSetup struct {
	world   *physics.World
	heights []float64
}

func main() {
	var (
		worldName  = flag.String("world", "rome", "мир для запуска: "+strings.Join(world.WorldNames(), ", "))
		addr       = flag.String("addr", ":8080", "адрес HTTP сервера")
		staticDir  = flag.String("static", "./static", "каталог клиентских файлов")
		enableTele = flag.Bool("telemetry", true, "телеметрия тел игроков")
		simLatency = flag.Duration("sim-latency", 0, "имитация сетевой задержки исходящих сообщений")
		simLoss    = flag.Float64("sim-loss", 0, "имитация потери пакетов (0.0-1.0)")
	)
	flag.Parse()

	if base := os.Getenv("SPLATWALK_ASSET_BASE"); base != "" {
		world.SetAssetBase(base)
	}

	cfg, err := world.GetWorld(*worldName)
	if err != nil {
		log.Fatalf("[Server] %v", err)
	}
	log.Printf("[Server] Мир: %s (%s), ассет %s", cfg.Name, cfg.Title, cfg.AssetURL)

	// Инициализация физики с таймаутом: генерация террейна может быть
	// дорогой, а без физики мир все равно можно показывать
	setup := initPhysics(cfg)
	if setup.world == nil {
		log.Printf("[Server] Физика недоступна, продолжаем в деградированном режиме")
	}

	wsServer := ws.NewWSServer(setup.world, cfg, setup.heights, log.Default())
	if *simLatency > 0 || *simLoss > 0 {
		wsServer.SetNetworkSimulation(ws.NetworkSimulation{
			Enabled:     true,
			BaseLatency: *simLatency,
			PacketLoss:  *simLoss,
		})
	}

	// Загрузка splat-ассета: одна попытка, ошибка не фатальна -
	// до onLoad переключатель отладки бездействует
	loader := assets.NewLoader(assetLoadTimeout, log.Default())
	loader.LoadAsync(context.Background(), cfg.AssetURL, cfg.AssetScale, func(asset *assets.Asset, err error) {
		if err != nil {
			wsServer.OnAssetLoaded(0, err)
			return
		}
		wsServer.OnAssetLoaded(asset.Count, nil)
	})

	loop := sim.NewLoop(60, setup.world, wsServer.Agents, log.Default())
	if *enableTele {
		manager := telemetry.NewManager(log.Default())
		loop.RegisterSystem(telemetry.NewPlayerSystem(manager, wsServer.Agents))
	}
	loop.Start()
	defer loop.Stop()

	fs := http.FileServer(http.Dir(*staticDir))
	http.Handle("/", fs)
	http.HandleFunc("/ws", wsServer.HandleWS)

	log.Printf("[Server] WebSocket сервер запущен на %s/ws", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}

// initPhysics строит физический мир в фоне и ждет не дольше таймаута
func initPhysics(cfg world.Config) physicsSetup {
	result := make(chan physicsSetup, 1)

	go func() {
		gravity := mgl64.Vec3{0, -baseGravity * cfg.GravityScale, 0}
		w := physics.NewWorld(gravity)

		// Фолбэк-пол под точкой появления
		w.AddCollider(physics.NewGroundBox(cfg.GroundY, cfg.GroundSize))

		var heights []float64
		if cfg.Terrain {
			heights = world.GenerateTerrain(cfg)
			hf := physics.NewHeightfield(heights, world.TerrainGridSize, world.TerrainGridSize,
				cfg.GroundSize, cfg.GroundSize)
			if hf != nil {
				w.AddCollider(hf)
			}
		}

		result <- physicsSetup{world: w, heights: heights}
	}()

	select {
	case setup := <-result:
		return setup
	case <-time.After(physicsInitTimeout):
		log.Printf("[Server] Таймаут инициализации физики (%v)", physicsInitTimeout)
		return physicsSetup{}
	}
}
