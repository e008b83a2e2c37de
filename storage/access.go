// SPDX-License-Identifier: ISC
// Copyright (c) 2017-2020 tomtau
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// DataAccess - cache fronted access to the shared database
type DataAccess interface {
	Put([]byte, []byte) error
	Delete([]byte) error
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Iterator(*ldb_util.Range) iterator.Iterator
}

type AccessData struct {
	db    *leveldb.DB
	cache Cache
}

func newDA(db *leveldb.DB, cache Cache) DataAccess {
	return &AccessData{
		db:    db,
		cache: cache,
	}
}

func (d *AccessData) Put(key []byte, value []byte) error {
	d.cache.Set(dbPut, string(key), value)
	return d.db.Put(key, value, nil)
}

func (d *AccessData) Delete(key []byte) error {
	d.cache.Set(dbDelete, string(key), []byte{})
	return d.db.Delete(key, nil)
}

func (d *AccessData) Get(key []byte) ([]byte, error) {
	val, found := d.getFromCache(key)
	if found {
		return val, nil
	}
	return d.getFromDB(key)
}

func (d *AccessData) getFromCache(key []byte) ([]byte, bool) {
	return d.cache.Get(string(key))
}

func (d *AccessData) getFromDB(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *AccessData) Iterator(searchRange *ldb_util.Range) iterator.Iterator {
	return d.db.NewIterator(searchRange, nil)
}

func (d *AccessData) Has(key []byte) (bool, error) {
	_, found := d.getFromCache(key)
	if found {
		return true, nil
	}
	return d.db.Has(key, nil)
}
