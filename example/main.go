package main

import (
	"errors"

	"github.com/alexflint/go-arg"
	log "github.com/sirupsen/logrus"

	"github.com/theflywheel/probedmap"
)

type config struct {
	Capacity int  `arg:"--capacity,env:PROBEDMAP_CAPACITY,help:number of slots" default:"11"`
	Keys     int  `arg:"--keys,env:PROBEDMAP_KEYS,help:number of keys to insert" default:"8"`
	Verbose  bool `arg:"--verbose,-v,help:enable debug logging"`
}

func main() {
	var cfg config
	arg.MustParse(&cfg)

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	m, err := probedmap.NewInteger[int, int](cfg.Capacity)
	if err != nil {
		log.WithError(err).Fatal("failed to create map")
	}
	log.WithField("capacity", m.Cap()).Info("map created")

	// Keys step by capacity so every insert lands in the same home slot.
	for i := 0; i < cfg.Keys; i++ {
		key := 1 + i*cfg.Capacity
		if err := m.Put(key, i*100); err != nil {
			if errors.Is(err, probedmap.ErrTableFull) {
				log.WithField("key", key).Warn("table full, insert rejected")
				continue
			}
			log.WithError(err).Fatal("failed to insert")
		}
	}
	log.WithFields(log.Fields{"live": m.Len(), "load_factor": m.LoadFactor()}).Info("inserted colliding keys")

	for i := 0; i < cfg.Keys+2; i += 2 {
		key := 1 + i*cfg.Capacity
		if v, ok := m.Get(key); ok {
			log.WithFields(log.Fields{"key": key, "value": v}).Info("found")
		} else {
			log.WithField("key", key).Info("not found")
		}
	}

	// Removing the head of the cluster leaves a tombstone; the rest stay reachable.
	if m.Delete(1) {
		log.WithField("tombstones", m.Tombstones()).Info("deleted key 1")
	}
	if cfg.Keys > 1 {
		key := 1 + cfg.Capacity
		v, ok := m.Get(key)
		log.WithFields(log.Fields{"key": key, "value": v, "found": ok}).Info("lookup past tombstone")
	}

	if err := m.Put(1, 999); err != nil {
		log.WithError(err).Fatal("failed to reinsert key 1")
	}
	v, _ := m.Get(1)
	log.WithFields(log.Fields{"key": 1, "value": v, "tombstones": m.Tombstones()}).Info("reinserted into tombstone")

	log.Info("example completed successfully")
}
