package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/sudorandom/globe-arcs/pkg/globeengine"
	"github.com/sudorandom/globe-arcs/pkg/sources"
)

var (
	qualityFlag     = flag.String("quality", "1080p", "Stream quality: 1080p or 4k")
	headlessFlag    = flag.Bool("headless", false, "Run without a local window (more stable for 24/7 streams)")
	outputFlag      = flag.String("output", "globe.flv", "Output destination (file path or RTMP URL)")
	softwareFlag    = flag.Bool("software", false, "Force software encoding (libx264) even if hardware acceleration is available")
	deviceFlag      = flag.String("device", "/dev/dri/renderD128", "VA-API render device path (Linux only)")
	debugFlag       = flag.Bool("debug", false, "Enable verbose logging for debugging")
	arcsFlag        = flag.String("arcs", "", "Path to an arcs JSON file (built-in demo tour when empty)")
	feedFlag     = flag.String("feed", "", "Websocket URL of a live activity feed")

	ffmpegStdin io.WriteCloser
)

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	width, height := 1920, 1080
	bitrate, maxBitrate := "9000k", "15000k"
	if *qualityFlag == "4k" {
		width, height = 3840, 2160
		bitrate, maxBitrate = "18000k", "25000k"
	}

	engine := globeengine.NewEngine(width, height, globeengine.Config{})

	// Use a pool of buffers to avoid constant allocations
	bufferPool := &sync.Pool{
		New: func() interface{} {
			return make([]byte, width*height*4)
		},
	}

	// Configure Stream Output with a non-blocking buffer
	frameChan := make(chan []byte, 2)
	engine.OnFrame = func(screen *ebiten.Image) {
		if ffmpegStdin != nil {
			buf := bufferPool.Get().([]byte)
			screen.ReadPixels(buf)
			select {
			case frameChan <- buf:
			default:
				// Skip frame if FFmpeg is falling behind and return buffer to pool
				bufferPool.Put(buf)
			}
		}
	}
	go func() {
		for buf := range frameChan {
			if ffmpegStdin != nil {
				ffmpegStdin.Write(buf)
			}
			bufferPool.Put(buf)
		}
	}()

	engine.InitTextures()
	fc, err := sources.FetchWorldGeoJSON()
	if err != nil {
		log.Fatalf("Failed to load world geometry: %v", err)
	}
	engine.LoadGeometry(fc)

	if *arcsFlag != "" {
		arcs, err := globeengine.LoadArcsFile(*arcsFlag, nil)
		if err != nil {
			log.Fatalf("Failed to load arcs file: %v", err)
		}
		engine.SetArcs(arcs)
	} else {
		engine.SetArcs(globeengine.SampleArcs())
	}

	initFFmpeg(width, height, bitrate, maxBitrate)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.StartRingLoop(ctx)
	if *feedFlag != "" {
		go engine.ListenToFeed(ctx, *feedFlag)
	}

	ebiten.SetTPS(30)
	if *headlessFlag {
		log.Println("Running in HEADLESS mode (Rendering active).")
		if err := ebiten.RunGame(engine); err != nil {
			log.Fatal(err)
		}
	} else {
		ebiten.SetWindowSize(1280, 720)
		ebiten.SetWindowTitle("Globe Streamer")
		if err := ebiten.RunGame(engine); err != nil {
			log.Fatal(err)
		}
	}
}

func initFFmpeg(width, height int, bitrate, maxBitrate string) {
	vcodec := "libx264"
	var globalHWArgs []string
	var outputHWArgs []string

	if !*softwareFlag {
		switch runtime.GOOS {
		case "darwin":
			vcodec = "h264_videotoolbox"
			outputHWArgs = []string{"-realtime", "true", "-q:v", "65", "-color_range", "1"}
		case "linux":
			if _, err := os.Stat(*deviceFlag); err == nil {
				f, err := os.OpenFile(*deviceFlag, os.O_RDWR, 0)
				if err != nil {
					log.Printf("WARNING: Device %s exists but cannot be opened for RW: %v. Using software encoding.", *deviceFlag, err)
				} else {
					f.Close()
					vcodec = "h264_vaapi"
					globalHWArgs = []string{"-vaapi_device", *deviceFlag}
					outputHWArgs = []string{"-vf", "format=nv12,hwupload", "-color_range", "1"}
				}
			} else if *debugFlag {
				log.Printf("DEBUG: Render device %s NOT found.", *deviceFlag)
			}
		}
	}

	var ffmpegArgs []string
	if *debugFlag {
		ffmpegArgs = append(ffmpegArgs, "-loglevel", "debug")
	}

	ffmpegArgs = append(ffmpegArgs, globalHWArgs...)
	ffmpegArgs = append(ffmpegArgs,
		"-thread_queue_size", "1024",
		"-f", "rawvideo", "-pixel_format", "rgba", "-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", "30", "-i", "pipe:0",
	)
	ffmpegArgs = append(ffmpegArgs,
		"-c:v", vcodec,
		"-b:v", bitrate,
		"-maxrate", maxBitrate,
		"-bufsize", "30000k",
		"-g", "60",
	)
	if vcodec != "h264_vaapi" {
		ffmpegArgs = append(ffmpegArgs, "-pix_fmt", "yuv420p")
	}
	if vcodec == "libx264" {
		ffmpegArgs = append(ffmpegArgs, "-preset", "veryfast", "-crf", "18", "-x264-params", "keyint=60:min-keyint=60:scenecut=0:bframes=2", "-color_range", "1")
	}
	ffmpegArgs = append(ffmpegArgs, outputHWArgs...)
	ffmpegArgs = append(ffmpegArgs, "-an")

	output := *outputFlag
	if strings.HasPrefix(output, "rtmp://") || strings.HasPrefix(output, "rtmps://") || strings.HasSuffix(output, ".flv") {
		ffmpegArgs = append(ffmpegArgs, "-f", "flv")
	}
	ffmpegArgs = append(ffmpegArgs, output)

	cmd := exec.Command("ffmpeg", ffmpegArgs...)
	cmd.Env = os.Environ()

	pipe, err := cmd.StdinPipe()
	if err != nil {
		log.Fatal(err)
	}
	ffmpegStdin = pipe

	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("ffmpeg process exited with error: %v", err)
		} else {
			log.Println("ffmpeg process exited normally")
		}
		if ffmpegStdin != nil {
			ffmpegStdin.Close()
			ffmpegStdin = nil
		}
	}()
}
