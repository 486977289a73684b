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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePresetLabel(t *testing.T) {
	for _, label := range fixedPresetLabels {
		minutes, err := parsePresetLabel(label)
		assert.NoError(t, err, label)
		assert.Greater(t, minutes, 0, label)
	}

	n, err := parsePresetLabel("45m")
	assert.NoError(t, err)
	assert.Equal(t, 45, n)

	for _, label := range []string{"", "m", "abc", "0m", "1000m", "-5m"} {
		_, err := parsePresetLabel(label)
		assert.Error(t, err, label)
	}
}
