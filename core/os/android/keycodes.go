// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package android

// KeyCode is an Android key code, as passed to input keyevent.
// The values match android.view.KeyEvent.
type KeyCode int

const (
	// KeyCode_Unknown is the code for an unknown key.
	KeyCode_Unknown KeyCode = 0
	// KeyCode_Home is the code for the home key.
	KeyCode_Home KeyCode = 3
	// KeyCode_Back is the code for the back key.
	KeyCode_Back KeyCode = 4
	// KeyCode_Enter is the code for the enter key.
	KeyCode_Enter KeyCode = 66
	// KeyCode_Menu is the code for the menu key.
	KeyCode_Menu KeyCode = 82
	// KeyCode_Escape is the code for the escape key.
	KeyCode_Escape KeyCode = 111
	// KeyCode_AppSwitch is the code for the app switch (recents) key.
	KeyCode_AppSwitch KeyCode = 187
	// KeyCode_Sleep is the code for the sleep key.
	KeyCode_Sleep KeyCode = 223
	// KeyCode_Wakeup is the code for the wakeup key.
	KeyCode_Wakeup KeyCode = 224
)
