// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires the save sync client: local storage, the cloud
// gateway, the save file host and the sync controller, plus the background
// workers that keep auto-sync running.
package client
