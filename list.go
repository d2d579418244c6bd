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

// Package list provides intrusive doubly-linked lists.
//
// Go standard library has container/list package which already provides
// doubly-linked lists. However in that implementation the list is kept
// separate from data structures representing elements, and every insertion
// allocates a wrapper node. This package provides alternative approach where
// elements embed necessary list heads, which is sometimes more convenient,
// for example when one wants to move a list element in O(1) starting from
// pointer to just its data, and with no allocation at all on insert.
//
// An element declares one Head field per list kind it can be a member of,
// and a List is bound to one such field via an accessor passed to New:
//
//	type Request struct {
//		inQueue list.Head[Request] // in Server.runq
//		inUser  list.Head[Request] // in User.reqv
//		...
//	}
//
//	runq := list.New(func(r *Request) *list.Head[Request] { return &r.inQueue })
//	reqv := list.New(func(r *Request) *list.Head[Request] { return &r.inUser })
//
// With separate head fields the same Request is simultaneously a member of
// both lists, and membership in one is managed independently of the other.
//
// A List owns only the link topology. It never allocates, copies or frees
// elements - element lifetime is entirely up to the caller, and an element
// that is still linked is kept alive by its ring.
//
// Every list is a circular ring closed through a sentinel head owned by the
// List. The empty list is the sentinel linked to itself - nil links are never
// used to represent emptiness, so hot-path operations do not branch on it.
//
// Lists are not safe for concurrent use. If a ring is mutated from multiple
// goroutines the callers must serialize access themselves, e.g. with an
// external mutex guarding the whole list.
package list

// Head is a list head entry for an element in an intrusive doubly-linked list.
//
// Head is linked into a ring via non-owning .next/.prev references. A head
// that is not part of any ring is detached; the canonical representation of
// detached is the head pointing to itself. The zero Head value, as well as a
// shallow copy of another head, count as detached too: copying a struct never
// copies ring membership, and the copy behaves as a fresh detached head while
// the original stays linked where it was.
type Head[T any] struct {
	next, prev *Head[T]

	// elem is the element this head is embedded into; nil for a list sentinel.
	// It is (re)bound whenever the head enters a list through the List API.
	elem *T
}

// Init initializes h as a detached head embedded into elem.
//
// Init must not be called on a head that is currently linked.
// Explicit initialization is not required before use - the zero Head is
// detached already - but Init is the way to bind elem for heads that are
// manipulated directly, without going through a List.
func (h *Head[T]) Init(elem *T) {
	h.next = h
	h.prev = h
	h.elem = elem
}

// Next returns the head following h in its ring.
func (h *Head[T]) Next() *Head[T] { return h.next }

// Prev returns the head preceding h in its ring.
func (h *Head[T]) Prev() *Head[T] { return h.prev }

// Elem returns the element h is embedded into; nil for a list sentinel.
func (h *Head[T]) Elem() *T { return h.elem }

// Linked reports whether h is currently a member of some ring.
//
// Only a head whose neighbour points back at it is linked. A detached head,
// the zero Head, and a copy of another head (whose neighbours keep pointing
// at the original) are all reported as not linked.
func (h *Head[T]) Linked() bool {
	return h.next != nil && h.next != h && h.next.prev == h
}

// Unlink removes h from the ring it is a member of and leaves it detached.
//
// Unlink of an already-detached head is a no-op, so it is safe to call it
// several times in a row and on heads that were never linked at all.
func (h *Head[T]) Unlink() {
	if !h.Linked() {
		// zero value, copy, or already detached - normalize to self-loop
		h.next = h
		h.prev = h
		return
	}
	h.next.prev = h.prev
	h.prev.next = h.next
	h.next = h
	h.prev = h
}

// MoveBefore moves h to be before b in b's ring.
//
// If h is currently linked - into the same or another ring - it is unlinked
// first: MoveBefore always moves membership and never duplicates it.
// h == b is a no-op, which also makes "move before own position" via a List
// insert a no-op. b must be either linked or a list sentinel.
func (h *Head[T]) MoveBefore(b *Head[T]) {
	if h == b {
		return
	}
	if b.next == nil {
		panic("list: MoveBefore: destination head is not on any ring")
	}
	h.Unlink()

	h.next = b
	h.prev = b.prev
	b.prev = h
	h.prev.next = h
}

// TakeFrom transfers src's ring membership to h.
//
// h takes over src's position in whatever ring src was linked into, with
// src's neighbours relinked to h; src is left detached. h must be detached
// and, if the ring is consumed through a List, bound to its own element via
// Init. h == src and detached src are no-ops (modulo normalizing both to the
// canonical detached state).
func (h *Head[T]) TakeFrom(src *Head[T]) {
	if h == src {
		return
	}
	if h.Linked() {
		panic("list: TakeFrom: destination head is already linked")
	}
	if !src.Linked() {
		h.next, h.prev = h, h
		src.next, src.prev = src, src
		return
	}
	h.next = src.next
	h.prev = src.prev
	h.next.prev = h
	h.prev.next = h
	src.next = src
	src.prev = src
}

// List is an intrusive doubly-linked list of *T elements.
//
// A List tracks membership through one designated Head field of T, selected
// by the accessor given to New. The List owns only its sentinel and the ring
// topology; elements are allocated and freed by the caller.
//
// A List must be created with New and must not be copied after first use
// (the ring closes through the address of the embedded sentinel).
type List[T any] struct {
	root Head[T] // sentinel: root.next is first, root.prev is last

	// link returns the head inside e that this list manages.
	link func(e *T) *Head[T]
}

// New creates an empty list tracking membership through the head selected by link.
//
// Lists with different link accessors are independent: an element may be a
// member of one list per Head field it embeds.
func New[T any](link func(*T) *Head[T]) *List[T] {
	l := &List[T]{link: link}
	l.root.Init(nil)
	return l
}

// Empty reports whether l has no elements.
func (l *List[T]) Empty() bool {
	return l.root.next == &l.root
}

// Len returns the number of elements in l.
//
// NOTE this is O(n) - the list does not maintain a counter.
func (l *List[T]) Len() int {
	n := 0
	for h := l.root.next; h != &l.root; h = h.next {
		n++
	}
	return n
}

// PushBack links e as the last element of l.
//
// If e is currently a member of l or of another list it is moved, not duplicated.
func (l *List[T]) PushBack(e *T) {
	h := l.link(e)
	h.elem = e
	h.MoveBefore(&l.root)
}

// PushFront links e as the first element of l.
//
// If e is currently a member of l or of another list it is moved, not duplicated.
func (l *List[T]) PushFront(e *T) {
	h := l.link(e)
	h.elem = e
	h.MoveBefore(l.root.next) // works even when the list is empty
}

// Front returns the first element of l. The list must be non-empty.
func (l *List[T]) Front() *T {
	if l.Empty() {
		panic("list: Front: empty list")
	}
	return l.root.next.elem
}

// Back returns the last element of l. The list must be non-empty.
func (l *List[T]) Back() *T {
	if l.Empty() {
		panic("list: Back: empty list")
	}
	return l.root.prev.elem
}

// PopFront unlinks the first element of l and returns it detached.
// The list must be non-empty.
func (l *List[T]) PopFront() *T {
	if l.Empty() {
		panic("list: PopFront: empty list")
	}
	h := l.root.next
	h.Unlink()
	return h.elem
}

// PopBack unlinks the last element of l and returns it detached.
// The list must be non-empty.
func (l *List[T]) PopBack() *T {
	if l.Empty() {
		panic("list: PopBack: empty list")
	}
	h := l.root.prev
	h.Unlink()
	return h.elem
}

// Clear detaches all elements from l.
//
// O(n). The elements themselves are not touched beyond unlinking.
func (l *List[T]) Clear() {
	for !l.Empty() {
		l.PopBack()
	}
}

// Begin returns the iterator of the first element, or End() if l is empty.
func (l *List[T]) Begin() Iter[T] {
	return Iter[T]{l.root.next}
}

// End returns the past-the-end iterator (the sentinel).
func (l *List[T]) End() Iter[T] {
	return Iter[T]{&l.root}
}

// IterTo returns the iterator of element e. e must be a member of l.
func (l *List[T]) IterTo(e *T) Iter[T] {
	return Iter[T]{l.link(e)}
}

// Insert links e immediately before pos and returns the iterator of e.
//
// If e is already linked - in l or elsewhere - it is moved into position.
// Inserting e before its own current position leaves the list unchanged.
func (l *List[T]) Insert(pos Iter[T], e *T) Iter[T] {
	h := l.link(e)
	h.elem = e
	h.MoveBefore(pos.h)
	return Iter[T]{h}
}

// Erase unlinks the element pos points at and returns the iterator of the
// element that followed it. pos must not be l.End().
func (l *List[T]) Erase(pos Iter[T]) Iter[T] {
	if pos.h == &l.root {
		panic("list: Erase: end iterator")
	}
	next := Iter[T]{pos.h.next}
	pos.h.Unlink()
	return next
}

// Splice moves the element range [first, last) out of other and links it
// into l immediately before pos, preserving the order of the moved elements.
//
// Only the four boundary references are re-pointed, so the move itself is
// O(1) regardless of the range length. first == last is a no-op, and so is
// pos == first (moving a range to just before itself). other may be l, but
// then pos must not lie inside (first, last) - such aliasing would corrupt
// the ring and is checked for.
//
// first and last must denote a valid range in other, and both lists must
// manage membership through the same Head field of T.
func (l *List[T]) Splice(pos Iter[T], other *List[T], first, last Iter[T]) {
	if first == last || pos == first {
		return
	}
	if l == other {
		// pos on a different ring cannot alias the range; same-ring check
		// walks the range, but the relink below stays 4 pointer writes.
		for it := first.Next(); it != last; it = it.Next() {
			if it == pos {
				panic("list: Splice: pos lies inside the spliced range")
			}
		}
	}

	tail := last.h.prev // last element actually moved

	// cut [first, tail] out of other's ring
	first.h.prev.next = tail.next
	tail.next.prev = first.h.prev

	// stitch it in before pos
	first.h.prev = pos.h.prev
	pos.h.prev.next = first.h

	tail.next = pos.h
	pos.h.prev = tail
}

// TakeFrom moves the whole content of other to the back of an emptied l.
//
// Any previous content of l is detached first; then other's chain is
// transferred in O(1) by re-pointing its boundary references onto l's
// sentinel. other is left empty. l == other is a no-op.
func (l *List[T]) TakeFrom(other *List[T]) {
	if l == other {
		return
	}
	l.Clear()
	if other.Empty() {
		return
	}
	first := other.root.next
	last := other.root.prev

	l.root.next = first
	first.prev = &l.root
	l.root.prev = last
	last.next = &l.root

	other.root.next = &other.root
	other.root.prev = &other.root
}

// Iter is a bidirectional cursor over list elements.
//
// An iterator refers to one head in a ring; it stays valid until that head
// is unlinked - operations elsewhere in the list never invalidate it.
// Iterators are compared with ==; two iterators are equal iff they refer to
// the same head.
type Iter[T any] struct {
	h *Head[T]
}

// Next returns the iterator of the following element.
//
// The ring is circular: Next of the end iterator is Begin.
func (it Iter[T]) Next() Iter[T] { return Iter[T]{it.h.next} }

// Prev returns the iterator of the preceding element.
//
// The ring is circular: Prev of the end iterator is the last element.
func (it Iter[T]) Prev() Iter[T] { return Iter[T]{it.h.prev} }

// Elem returns the element the iterator refers to.
// it must not be the end iterator.
func (it Iter[T]) Elem() *T {
	if it.h.elem == nil {
		panic("list: Elem of end iterator")
	}
	return it.h.elem
}
