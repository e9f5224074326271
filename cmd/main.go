package main

import (
	"chat-sim/domain"
	"chat-sim/domain/event"
	"chat-sim/internal"
	"chat-sim/projection"
	"chat-sim/repositories"
	"chat-sim/runtime"
	"chat-sim/runtime/workers"
	"chat-sim/sink"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the simulator, plays a scripted conversation and prints the
// transcript. Returning errors keeps every defer running before exit.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	directory, err := config.ParticipantDirectory()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// 2. Transcript storage, in memory only
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()
	repository := repositories.NewTranscriptRepository(db, log, config.TranscriptLimit)
	timeline := projection.NewTimeline(config.DemoUserID)

	// 3. Simulator & supervised workers
	observed := make(chan event.Event, config.BufferSize)
	loop := runtime.NewEventLoop(log, config.BufferSize)
	fanout := workers.NewEventFanout(log, observed, config.SinkTimeout,
		sink.NewTranscriptSink(repository, log), timeline)

	options := config.SimulatorOptions()
	options.Observer = observed
	simulator := runtime.NewSimulator(log, loop, runtime.NewRandomSource(config.RandomSeed), directory, options)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The event loop stops first so that nothing is delivered once the
	// observer channel is closed. The fanout then drains what is left.
	clock := workers.NewSupervisor(log, config.RestartInterval)
	clock.Add(loop, workers.NewChannelCapacityWorker(log, config.MetricInterval,
		workers.NamedChannel{Name: "observed", Channel: observed}))
	pipeline := workers.NewSupervisor(log, config.RestartInterval)
	pipeline.Add(fanout)
	clockDone := supervise(runCtx, clock)
	pipelineDone := supervise(ctx, pipeline)

	// 4. Conversation
	playScenario(ctx, simulator, config)

	// 5. Final Cleanup
	cancel()
	<-clockDone
	close(observed)
	<-pipelineDone

	records, err := repository.List("")
	if err != nil {
		return fmt.Errorf("transcript reading failed: %w", err)
	}
	printTranscript(records)
	fmt.Printf("%d chat messages in the timeline of %s\n", len(timeline.Messages()), timeline.Owner)
	log.Info("Program stopped cleanly")
	return nil
}

func supervise(ctx context.Context, supervisor *workers.Supervisor) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		supervisor.Run(ctx)
		close(done)
	}()
	return done
}

func playScenario(ctx context.Context, simulator *runtime.Simulator, config internal.Config) {
	socket := simulator.Connect(config.DemoUserID, domain.Role(config.DemoRole))
	for _, name := range []string{
		event.Connect, event.NewMessage, event.OnlineUsers,
		event.Disconnect, event.RequestUpdate, event.NewNotification,
	} {
		socket.On(name, printEvent)
	}

	pause(ctx, 300*time.Millisecond)
	simulator.SendMessage(domain.OutgoingMessage{Text: "Hi, my order has not arrived yet.", Type: domain.MessageSupport})
	pause(ctx, 300*time.Millisecond)
	simulator.SendRequestUpdate("REQ-1", map[string]any{"status": "in_progress"})
	simulator.SendNotification(domain.OutgoingNotification{Message: "Please check request REQ-1", Type: "reminder"})

	// Leaves room for a possible auto reply
	pause(ctx, config.DemoDuration)
	simulator.Disconnect()
	simulator.SendMessage(domain.OutgoingMessage{Text: "Anyone there?"})
}

func pause(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

var eventColors = map[string]color.Style{
	event.Connect:         color.New(color.FgGreen),
	event.NewMessage:      color.New(color.FgCyan),
	event.OnlineUsers:     color.New(color.FgMagenta),
	event.Disconnect:      color.New(color.FgRed),
	event.RequestUpdate:   color.New(color.FgYellow),
	event.NewNotification: color.New(color.FgBlue),
}

func printEvent(evt event.Event) error {
	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return err
	}
	header := fmt.Sprintf("%-16s", evt.Name)
	if style, ok := eventColors[evt.Name]; ok {
		header = style.Render(header)
	}
	fmt.Printf("%s %s\n", header, payload)
	return nil
}

func printTranscript(records []repositories.Record) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"At", "Event", "Payload"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, record := range records {
		payload, _ := json.Marshal(record.Payload)
		table.Append([]string{record.At.Format("15:04:05.000"), record.Name, string(payload)})
	}
	table.Render()
}
