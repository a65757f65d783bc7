package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/sudorandom/globe-arcs/pkg/catalog"
	"github.com/sudorandom/globe-arcs/pkg/globeengine"
	"github.com/sudorandom/globe-arcs/pkg/sources"
)

var (
	headlessFlag = flag.Bool("headless", false, "Run without a local window (Xvfb rendering active)")
	renderWidth  = flag.Int("width", 1920, "Internal rendering width")
	renderHeight = flag.Int("height", 1080, "Internal rendering height")
	windowWidth  = flag.Int("window-width", 1280, "Initial window width (non-headless only)")
	windowHeight = flag.Int("window-height", 720, "Initial window height (non-headless only)")
	tpsFlag      = flag.Int("tps", 30, "Ticks per second (engine updates)")
	configFlag   = flag.String("config", "", "Path to a JSON display config (merged over defaults)")
	arcsFlag     = flag.String("arcs", "", "Path to an arcs JSON file (built-in demo tour when empty)")
	feedFlag     = flag.String("feed", "", "Websocket URL of a live activity feed")
	geoipFlag    = flag.String("geoip", "", "Path to a MaxMind database for feed IP geolocation")
	catalogFlag  = flag.String("catalog", "data/catalog", "Badger directory for the city catalog")
	seedFlag     = flag.Bool("seed-catalog", false, "Seed the city catalog from the world-cities CSV and exit")
	audioFlag    = flag.String("audio", "", "Directory of MP3s for the ambient soundtrack")
	captureFlag  = flag.String("capture", "", "Directory for periodic PNG frame captures")
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if *seedFlag {
		seedCatalog()
		return
	}

	cfg := globeengine.Config{}
	if *configFlag != "" {
		var err error
		if cfg, err = loadConfig(*configFlag); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	engine := globeengine.NewEngine(*renderWidth, *renderHeight, cfg)
	engine.FrameCaptureDir = *captureFlag

	if *geoipFlag != "" {
		geo, err := catalog.OpenGeoIP(*geoipFlag)
		if err != nil {
			log.Fatalf("Failed to open GeoIP database: %v", err)
		}
		defer geo.Close()
		engine.GeoIP = geo
	}

	engine.InitTextures()
	fc, err := sources.FetchWorldGeoJSON()
	if err != nil {
		log.Fatalf("Failed to load world geometry: %v", err)
	}
	engine.LoadGeometry(fc)

	engine.SetArcs(loadArcs())

	// The viewer owns the recurring tasks; cancelling the context stops
	// the ring loop and the feed before the process exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.StartRingLoop(ctx)
	if *feedFlag != "" {
		go engine.ListenToFeed(ctx, *feedFlag)
	}
	if *audioFlag != "" {
		player := globeengine.NewSoundtrackPlayer(*audioFlag, engine.SetNowPlaying)
		player.Start()
		defer player.Shutdown()
	}

	ebiten.SetTPS(*tpsFlag)
	if *headlessFlag {
		log.Println("Running in HEADLESS mode (Rendering active).")
		if err := ebiten.RunGame(engine); err != nil {
			log.Fatal(err)
		}
	} else {
		ebiten.SetWindowSize(*windowWidth, *windowHeight)
		ebiten.SetWindowTitle("Globe Arcs")
		if err := ebiten.RunGame(engine); err != nil {
			log.Fatal(err)
		}
	}
}

func loadConfig(path string) (globeengine.Config, error) {
	var cfg globeengine.Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = json.Unmarshal(data, &cfg)
	return cfg, err
}

func loadArcs() []globeengine.Arc {
	if *arcsFlag == "" {
		return globeengine.SampleArcs()
	}

	var resolver globeengine.CityResolver
	if _, err := os.Stat(*catalogFlag); err == nil {
		store, err := catalog.Open(*catalogFlag)
		if err != nil {
			log.Fatalf("Failed to open city catalog: %v", err)
		}
		defer store.Close()
		resolver = store
	}

	arcs, err := globeengine.LoadArcsFile(*arcsFlag, resolver)
	if err != nil {
		log.Fatalf("Failed to load arcs file: %v", err)
	}
	return arcs
}

func seedCatalog() {
	store, err := catalog.Open(*catalogFlag)
	if err != nil {
		log.Fatalf("Failed to open city catalog: %v", err)
	}
	defer store.Close()

	r, err := sources.GetWorldCitiesReader()
	if err != nil {
		log.Fatalf("Failed to fetch world cities: %v", err)
	}
	defer r.Close()

	if _, err := store.SeedFromCSV(r); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
}
