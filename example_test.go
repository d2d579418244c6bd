// Copyright (C) 2017-2021  Nexedi SA and Contributors.
//                          Kirill Smelkov <kirr@nexedi.com>
//
// This program is free software: you can Use, Study, Modify and Redistribute
// it under the terms of the GNU General Public License version 3, or (at your
// option) any later version, as published by the Free Software Foundation.
//
// You can also Link and Combine this program with other software covered by
// the terms of any of the Free Software licenses or any of the Open Source
// Initiative approved licenses and Convey the resulting work. Corresponding
// source of such a combination shall include the source code for all other
// software used.
//
// This program is distributed WITHOUT ANY WARRANTY; without even the implied
// warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//
// See COPYING file for full licensing terms.
// See https://www.nexedi.com/licensing for rationale and options.

package list_test

import (
	"fmt"

	list "github.com/A-Ih/intrusive-list"
)

// request is an element that lives in a queue; the link head is embedded, so
// queue membership costs no allocation.
type request struct {
	url string

	inQueue list.Head[request]
}

func ExampleList() {
	q := list.New(func(r *request) *list.Head[request] { return &r.inQueue })

	q.PushBack(&request{url: "/a"})
	q.PushBack(&request{url: "/b"})
	q.PushFront(&request{url: "/0"})

	for !q.Empty() {
		fmt.Println(q.PopFront().url)
	}
	// Output:
	// /0
	// /a
	// /b
}

// entry is a member of two rings at the same time: the hash bucket it lives
// in and the global LRU order - compare revCacheEntry in a cache keeping its
// entries both per-object and in one LRU list.
type entry struct {
	key string

	inBucket list.Head[entry]
	inLRU    list.Head[entry]
}

func ExampleList_multipleMembership() {
	bucket := list.New(func(e *entry) *list.Head[entry] { return &e.inBucket })
	lru := list.New(func(e *entry) *list.Head[entry] { return &e.inLRU })

	a := &entry{key: "a"}
	b := &entry{key: "b"}
	for _, e := range []*entry{a, b} {
		bucket.PushBack(e)
		lru.PushBack(e)
	}

	// touching a moves it in the LRU ring only
	lru.PushBack(a)

	for it := bucket.Begin(); it != bucket.End(); it = it.Next() {
		fmt.Println("bucket:", it.Elem().key)
	}
	for it := lru.Begin(); it != lru.End(); it = it.Next() {
		fmt.Println("lru:   ", it.Elem().key)
	}
	// Output:
	// bucket: a
	// bucket: b
	// lru:    b
	// lru:    a
}
