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
	"sync"

	"github.com/Workiva/go-datastructures/queue"
	"github.com/panjf2000/ants/v2"
)

// action is one queued menu selection.
type action struct {
	name string
	fn   func()
}

// actionDispatcher decouples host event handlers from the work they
// trigger. Selections are queued and executed on a goroutine pool, so a
// modal prompt opened by one action never blocks the host's event
// dispatch. With one worker, actions execute in selection order.
type actionDispatcher struct {
	q    *queue.Queue
	pool *ants.Pool
	wg   sync.WaitGroup
	loop sync.WaitGroup
}

func newActionDispatcher(workers int) (*actionDispatcher, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	d := &actionDispatcher{
		q:    queue.New(16),
		pool: pool,
	}
	d.loop.Add(1)
	go d.run()
	return d, nil
}

// dispatch queues an action. Safe to call from any goroutine; after
// close it drops the action with a warning.
func (d *actionDispatcher) dispatch(name string, fn func()) {
	if err := d.q.Put(action{name: name, fn: fn}); err != nil {
		pluginLogger.Warnf("action %q dropped: %v", name, err)
	}
}

func (d *actionDispatcher) run() {
	defer d.loop.Done()
	for {
		items, err := d.q.Get(1)
		if err != nil {
			// queue disposed, dispatcher is closing
			return
		}
		a, ok := items[0].(action)
		if !ok {
			continue
		}
		d.wg.Add(1)
		if err := d.pool.Submit(func() {
			defer d.wg.Done()
			a.fn()
		}); err != nil {
			d.wg.Done()
			pluginLogger.Warnf("action %q not submitted: %v", a.name, err)
		}
	}
}

// close stops intake, waits for in-flight actions and releases the pool.
func (d *actionDispatcher) close() {
	d.q.Dispose()
	d.loop.Wait()
	d.wg.Wait()
	d.pool.Release()
}
