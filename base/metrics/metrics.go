/*Package metrics wraps datadog-go to facilitate metric recording.
Naming convention:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
*/
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/Mohit8269/Action-House/base/log"
)

const (
	// ddRate is the rate to pass metrics to the datadog agent. 1 means always
	ddRate = 1
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

// Ender finishes a timer started with BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)
	BumpTime(key string, tags ...string) Ender
}

var (
	initOnce sync.Once
	ddClient statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

func initDDClient() {
	addr := fmt.Sprintf("%s:%d", viper.GetString("datadog_host"), 8125)
	log.Log().WithField("addr", addr).Info("connecting to datadog agent")
	cli, err := statsd.NewBuffered(addr, bufferMetrics)
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	ddClient = cli
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	tags := []string{
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	return &impl{pkgName: pkgName, tags: tags}
}

type impl struct {
	pkgName string
	tags    []string
}

func (mt *impl) BumpAvg(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	// datadog has no plain average; gauge is the closest fit
	if err := ddClient.Gauge(mt.pkgName+`.`+key, val, append(mt.tags, parseTag(tags)...), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpAvg"}).Error("Bump fail")
	}
}

func (mt *impl) BumpSum(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	if err := ddClient.Count(mt.pkgName+`.`+key, int64(val), append(mt.tags, parseTag(tags)...), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpSum"}).Error("Bump fail")
	}
}

func (mt *impl) BumpHistogram(key string, val float64, tags ...string) {
	initOnce.Do(initDDClient)
	if err := ddClient.Histogram(mt.pkgName+`.`+key, val, append(mt.tags, parseTag(tags)...), ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpHistogram"}).Error("Bump fail")
	}
}

// BumpTime starts a timer; End() records the elapsed milliseconds.
//
//	defer s.BumpTime("my.function").End()
func (mt *impl) BumpTime(key string, tags ...string) Ender {
	initOnce.Do(initDDClient)
	return &timeTracker{
		start: time.Now(),
		key:   mt.pkgName + `.` + key,
		tags:  append(mt.tags, parseTag(tags)...),
	}
}

func parseTag(tags []string) []string {
	if tags == nil {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

type timeTracker struct {
	start time.Time
	key   string
	tags  []string
}

func (t *timeTracker) End() {
	d := time.Since(t.start)
	dur := float64(d/time.Millisecond) + float64(d%time.Millisecond)*1e-6
	if err := ddClient.TimeInMilliseconds(t.key, dur, t.tags, ddRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": t.key, "val": dur, "func": "BumpTime"}).Error("Bump fail")
	}
}
