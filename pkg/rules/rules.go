// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rules holds the built-in substitutions that repair the home page
// component restored from its backup.
package rules

import (
	"github.com/walteh/homepatch/pkg/text"
)

// 📁 Default paths, relative to the frontend root
const (
	DefaultSource      = "src/components/HomePage.backup.tsx"
	DefaultDestination = "src/components/HomePage.tsx"
)

const particlesIndent = "          "

const (
	ConsentLabelMarketing   = "Aceito receber contato da Andorinha Marketing *"
	ConsentLabelAudiovisual = "Aceito receber contato da Andorinha Audiovisual *"
)

// HomePage returns the ordered rule set. Order matters: each rule runs on the
// output of the previous one. A fresh slice is returned on every call.
func HomePage() []text.ReplacementRule {
	return []text.ReplacementRule{
		// malformed closing tags
		{Name: "close section tag", FromText: "</section >", ToText: "</section>"},
		{Name: "close main tag", FromText: "</main >", ToText: "</main>"},

		// malformed opening tag
		{Name: "open section tag", FromText: "< section", ToText: "<section"},

		// re-enable the Particles background
		{Name: "uncomment particles open", FromText: "{/* <Particles", ToText: "<Particles"},
		{Name: "uncomment particles close", FromText: "/> */}", ToText: "/>"},

		// Indented variants of the two rules above. They cannot match once the
		// unindented rules have run; kept so the rule list stays as written.
		{Name: "uncomment indented particles open", FromText: particlesIndent + "{/* <Particles", ToText: particlesIndent + "<Particles"},
		{Name: "uncomment indented particles close", FromText: particlesIndent + "/> */}", ToText: particlesIndent + "/>"},

		{Name: "consent label brand", FromText: ConsentLabelMarketing, ToText: ConsentLabelAudiovisual},
	}
}
