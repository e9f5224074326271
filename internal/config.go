package internal

import (
	"chat-sim/domain"
	"chat-sim/runtime"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Config struct {
	LogLevel             string        `env:"LOG_LEVEL,default=INFO" validate:"required"`
	BufferSize           int           `env:"BUFFER_SIZE,default=256" validate:"gt=0"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=500ms" validate:"gt=0"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=1s" validate:"gt=0"`
	ConnectDelay         time.Duration `env:"CONNECT_DELAY,default=100ms" validate:"gt=0"`
	MessageDelay         time.Duration `env:"MESSAGE_DELAY,default=100ms" validate:"gt=0"`
	RequestUpdateDelay   time.Duration `env:"REQUEST_UPDATE_DELAY,default=200ms" validate:"gt=0"`
	NotificationDelay    time.Duration `env:"NOTIFICATION_DELAY,default=100ms" validate:"gt=0"`
	AutoReplyProbability float64       `env:"AUTO_REPLY_PROBABILITY,default=0.3" validate:"gte=0,lte=1"`
	AutoReplyMinDelay    time.Duration `env:"AUTO_REPLY_MIN_DELAY,default=1s" validate:"gt=0"`
	AutoReplyJitter      time.Duration `env:"AUTO_REPLY_JITTER,default=2s" validate:"gte=0"`
	RandomSeed           string        `env:"RANDOM_SEED"`
	Directory            string        `env:"DIRECTORY"`
	TranscriptLimit      *int          `env:"TRANSCRIPT_LIMIT" validate:"omitempty,gt=0"`
	DemoUserID           string        `env:"DEMO_USER_ID,default=1" validate:"required"`
	DemoRole             string        `env:"DEMO_ROLE,default=user" validate:"required"`
	DemoDuration         time.Duration `env:"DEMO_DURATION,default=4s" validate:"gt=0"`
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

// SimulatorOptions maps the delays and the auto reply settings.
// The observer channel is left to the caller.
func (c Config) SimulatorOptions() runtime.Options {
	return runtime.Options{
		ConnectDelay:         c.ConnectDelay,
		MessageDelay:         c.MessageDelay,
		RequestUpdateDelay:   c.RequestUpdateDelay,
		NotificationDelay:    c.NotificationDelay,
		AutoReplyProbability: c.AutoReplyProbability,
		AutoReplyMinDelay:    c.AutoReplyMinDelay,
		AutoReplyJitter:      c.AutoReplyJitter,
	}
}

// ParticipantDirectory falls back to the default directory when DIRECTORY is unset.
func (c Config) ParticipantDirectory() (domain.Directory, error) {
	if c.Directory == "" {
		return domain.DefaultDirectory(), nil
	}
	return domain.ParseDirectory(c.Directory)
}
