// Package catalog resolves place names and IP addresses to coordinates.
package catalog

import (
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

// Store is a disk-backed city index mapping "name|CC" keys to coordinates,
// with a read-through in-memory cache on top of Badger.
type Store struct {
	db    *badger.DB
	cache sync.Map
}

func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	// Decrease logging verbosity
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func cityKey(name, cc string) string {
	return strings.ToLower(name) + "|" + strings.ToUpper(cc)
}

func encodeCoords(lat, lng float64) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf, math.Float64bits(lat))
	binary.BigEndian.PutUint64(buf[8:], math.Float64bits(lng))
	return buf
}

func decodeCoords(buf []byte) (lat, lng float64, err error) {
	if len(buf) != 16 {
		return 0, 0, fmt.Errorf("bad coordinate record length %d", len(buf))
	}
	lat = math.Float64frombits(binary.BigEndian.Uint64(buf))
	lng = math.Float64frombits(binary.BigEndian.Uint64(buf[8:]))
	return lat, lng, nil
}

// Put stores a single city coordinate.
func (s *Store) Put(name, cc string, lat, lng float64) error {
	key := cityKey(name, cc)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encodeCoords(lat, lng))
	})
	if err == nil {
		s.cache.Store(key, [2]float64{lat, lng})
	}
	return err
}

// Resolve looks a city up, first in the memory cache, then on disk.
// ok is false when the city is unknown.
func (s *Store) Resolve(name, cc string) (lat, lng float64, ok bool) {
	key := cityKey(name, cc)
	if v, cached := s.cache.Load(key); cached {
		if v == nil {
			return 0, 0, false
		}
		c := v.([2]float64)
		return c[0], c[1], true
	}

	var buf []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		buf, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		s.cache.Store(key, nil)
		return 0, 0, false
	}
	if err != nil {
		log.Printf("Catalog lookup error for %q: %v", key, err)
		return 0, 0, false
	}
	lat, lng, err = decodeCoords(buf)
	if err != nil {
		log.Printf("Catalog decode error for %q: %v", key, err)
		return 0, 0, false
	}
	s.cache.Store(key, [2]float64{lat, lng})
	return lat, lng, true
}

// Count returns the number of stored cities.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// SeedFromCSV loads the world-cities CSV (id, name, state columns, country
// code at index 6, latitude/longitude at 8 and 9) into the store with a
// single write batch. Rows that fail to parse are skipped.
func (s *Store) SeedFromCSV(r io.Reader) (int, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	if _, err := csvReader.Read(); err != nil { // header
		return 0, err
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	n := 0
	for {
		rec, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(rec) < 10 {
			continue
		}
		lat, latErr := strconv.ParseFloat(rec[8], 64)
		lng, lngErr := strconv.ParseFloat(rec[9], 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		key := cityKey(rec[1], rec[6])
		if err := wb.Set([]byte(key), encodeCoords(lat, lng)); err != nil {
			return n, err
		}
		n++
	}
	if err := wb.Flush(); err != nil {
		return n, err
	}
	log.Printf("Catalog seeded with %d cities", n)
	return n, nil
}

// ResolveArc fills in missing coordinates on an arc whose endpoints are
// given as city names. Returns false when either endpoint is unknown.
func (s *Store) ResolveArc(startCity, startCC, endCity, endCC string) (startLat, startLng, endLat, endLng float64, ok bool) {
	startLat, startLng, ok = s.Resolve(startCity, startCC)
	if !ok {
		return 0, 0, 0, 0, false
	}
	endLat, endLng, ok = s.Resolve(endCity, endCC)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return startLat, startLng, endLat, endLng, true
}
