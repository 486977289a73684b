/*
 * Copyright 2026 PlayerKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package plugin

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherPreservesOrder(t *testing.T) {
	d, err := newActionDispatcher(1)
	require.NoError(t, err)

	var mu sync.Mutex
	var got []int
	const n = 100
	for i := 0; i < n; i++ {
		i := i
		d.dispatch(fmt.Sprintf("action-%d", i), func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	d.close()

	require.Len(t, got, n)
	for i := 0; i < n; i++ {
		assert.Equal(t, i, got[i])
	}
}

func TestDispatcherCloseWaitsForInflight(t *testing.T) {
	d, err := newActionDispatcher(1)
	require.NoError(t, err)

	started := make(chan struct{})
	finished := false
	d.dispatch("slow", func() {
		close(started)
		finished = true
	})
	<-started
	d.close()
	assert.True(t, finished)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	d, err := newActionDispatcher(1)
	require.NoError(t, err)
	d.close()

	ran := false
	// must not panic, must not run
	d.dispatch("late", func() { ran = true })
	assert.False(t, ran)
}
