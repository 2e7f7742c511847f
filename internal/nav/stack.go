// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

// Stack is a navigation stack whose bottom element (the root) cannot be
// popped. It is not safe for concurrent use; the UI event loop owns it.
type Stack[T any] struct {
	items []T
}

// NewStack returns a stack holding only root.
func NewStack[T any](root T) *Stack[T] {
	return &Stack[T]{items: []T{root}}
}

// Push opens s on top.
func (st *Stack[T]) Push(s T) {
	st.items = append(st.items, s)
}

// Pop closes the top screen and returns it. The root is never popped.
func (st *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(st.items) <= 1 {
		return zero, false
	}
	top := st.items[len(st.items)-1]
	st.items[len(st.items)-1] = zero
	st.items = st.items[:len(st.items)-1]
	return top, true
}

// Replace swaps the top screen for s.
func (st *Stack[T]) Replace(s T) {
	st.items[len(st.items)-1] = s
}

// Reset drops every screen and makes s the new root.
func (st *Stack[T]) Reset(s T) {
	clear(st.items)
	st.items = append(st.items[:0], s)
}

// Current returns the top screen.
func (st *Stack[T]) Current() T {
	return st.items[len(st.items)-1]
}

// Items returns the screens from root to top.
func (st *Stack[T]) Items() []T {
	out := make([]T, len(st.items))
	copy(out, st.items)
	return out
}

// Depth returns the number of screens, root included.
func (st *Stack[T]) Depth() int {
	return len(st.items)
}
