// SPDX-FileCopyrightText: © 2024 David Stainton
// SPDX-License-Identifier: AGPL-3.0-only

package hrss

import "encoding/hex"

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Known-answer vectors for the deterministic key generation,
// encapsulation and implicit-rejection paths.
var testVectorPublicKey = mustDecodeHex(
	"f89fa0fcf1d4fa4d8f3528730e37181d09f39e160d7f9c8217a1a1886b295b3a" +
	"30cd6f8e0cd3380c05686e4ccc20d406770cac1c491400d69b1cde430a5937d6" +
	"46681f04cb7392372d7f577016e806483b66b363025a7146dda4eeb87844fd9e" +
	"d0711600bd011e272ea0c68d55897c2a012b1b75a2c2d15a67fadd3b709ddbcd" +
	"73325e24b1cf23be3c56ccbe61dbe73cc7f509e687a009529d615bc6d4c52ec2" +
	"6c873036496f04aab326d563cfd4741ec779b3fc8c413679aad5ba644948dbeb" +
	"e8337dbe3b67d7fd931e808d17ab6ffd1c4b2d5b90f0f05dbe8f811829089a47" +
	"1bc22da2225a4fe98164dd532e67e5071af00c549be2f8e6b3b6e05a74fa8d9c" +
	"a57c6e73baee6e6e31cb59d7fd941c4d62c6870b3854c635acc88cc0d999eefc" +
	"a9dec450888e24f6d604543e81c4969a40e5ef8bec41501d14aea45aacd47331" +
	"c31dc19689d86297603f582a5fcfcb26996981139caf1791a8eb9af9d3834766" +
	"c7f8d8e3d27e58a9f5b203be7ea5299dffd1d85539c72cce0364dc18e7b06046" +
	"26ebb7614b912cd8a2ee632e150a588804b1ed6df15cc7ee603826c9317e69e4" +
	"ac3c72093ee62430446e6683b92a22af261eaaa3f4b1a15cfa5f0d71ace3e0c3" +
	"dd4f96578b58ace3428e4772b1e419683ebb1914df16b5de7f37afd8d33d6a16" +
	"1b26d3cc5382579089c57e6d7e995bcdd318bb89ef76bdd262f0e8252a8de221" +
	"eade6ea5a43d58eedf90c1a1385d1150b5ac9db4fdef53e8c0176c4f31e0cc8f" +
	"807a8414deeeecdd6aad2965a572c3735fe36f60b1fb0faac6da534ab1922ab7" +
	"02bef9df3716e75c380b3ce2dd90b87b48697981c5ae9a0d7895526380da4669" +
	"20579b27e2e8bd2f45e64640ae50d5a25393e199fd137cf622c46cabe3c9550a" +
	"166768266bd67dded3ae713202f127674774d940351d257232df75d56026ab90" +
	"faeb26114bb4c5c23ea9233a4e6ab1bbb3eaf91ee410f5dc35deb5eef0dea118" +
	"80c7136846940e2a8ef8e92684420f56ed677feb7d35070111818b5688c65861" +
	"653c5d9c5825d6df4e3b93bf82e119b8dade2638f2d9952498de58f70ce932bb" +
	"ccf79269a2f0c3fad2318b434e03e213796e73633b45de80f426b138ed6255c6" +
	"6a67002dbab2c5b69762286430b9fb3f940348362c5dfd089640d16ce5d0f899" +
	"408287d7dc2f8baa31960a3433a6f1846e3373c5e326add0cb627182abd18233" +
	"e6cad03ef54d126ef183bddc4ddf49bc63ae7e59e83c0dd61d41897252c0aed1" +
	"2f0a8ace26d03e0c713252b2e4eea2e528b63369975a53db5663e9b36d60f47a" +
	"ceec3665d5ca632a1990147b0233fa11585ad9c554f328d56eea85f509bb8144" +
	"1c636681c5962d7c0e757bb47e4e0cfd3cc55a22855cc8f397982ce946b402cf" +
	"7da4f2447a8971a0fab6a3af132546e264e369baf9685cc0b7a8a64be142e9b5" +
	"c784bba64b104ed468700a752abb9da0cbf0364c706c604dfee8c866801bf7cc" +
	"1add6ba7a725610c31f03463000e486a5a8d47943f1416a88a49bb0c4321daf2" +
	"c5d0ff193e366420b370ae54ca7305567a4945e946bcc26170407cb0f7eac0d1" +
	"b0772cc7dd88cb9dea556c5c28b8841c2c06")

var testVectorCiphertext = mustDecodeHex(
	"8e6b469d4aefa68c287bec6f132d7f6cca7d9e6b5462a313e11e8f5f7167c485" +
	"dfd56bbd860f98eca504f77b2abecbac29bee10fbc6287857f05aee43f87fc1f" +
	"f7451ea3dbb1a025ba82ecca8dab7a2003ebe55c9fd04678f15ac79eb4106d37" +
	"c07508fbebcbd835219b89a0aa870066383768a4a3938e2bcaf77a43b2157981" +
	"cea909cb29d4cceff19bbde663d5260fe88bdff1c3b4180ef21d5d829b1ff3ca" +
	"362a260a7fc40dbd5b151c186c114eec3601c115abf70b1ad3a1bd68c859e749" +
	"5cd54b8c31dbb3ea88092fb98bfd963588537240cd8975b420f6f6e5741948af" +
	"4baa42a4c890eef312046390928a89c3a07efe19b3545383e9c16ce397a627c3" +
	"209a7935c9b5c090e1568469c25477524855713ecda7d6255d4913d259d7e1d1" +
	"7046a0d4ee59131f1ad3397db079f7c0735ebb08f75cb031413d7b1ef0e6475c" +
	"37d554f1bb64d7418b3455aac35a9ca0cc298e5a1a935a49d3d0a056da32a2a9" +
	"a71342939b2032375c3e03a5281093dda0047b2abd31c36a89586e550ec95c70" +
	"0710f19abdfbd2b7945b4f8d90faeeae3748c5f816a13b70031f0eb8bd8d304f" +
	"95310b9ffc80f8efa33cbce223233e2a5511e82c17ea1cbd1d2d1bd5169e05fc" +
	"8964504d9a2250c65ad958998fbdf24f2cdb516a86e2c6648f541af2cb348808" +
	"bd2a8fec29f522368399b9718c995cec9178c1e22de9d14df515934d93929f0f" +
	"335ecd585f3d52b9386a85638b6329cb671225c244d7ab1a24ca3dca77ce2868" +
	"1a91ed7bc97084abe2d4f4ac58f67099fc994dbdb41b4f15869508d14e73a9bc" +
	"6a8cbcb54be0ee3524f912f58870506cfe0d35bdf7c42e3916306cf3b21944aa" +
	"cb4af675b709b9e14771705c055f50509cd0e3c791ee6bc70f711bc3488bed15" +
	"268cc3d55408cc3379c09f49c875efb6f32989fd75d1da92c313c6765111407b" +
	"82f730794904e3bb6134a6580b7def3ef9b38d2abae9bcc0a7e66cdaf88cdf8d" +
	"96832d804f2181de579d0a3cccec3bb225963ceafd4626be1c79821de014227c" +
	"803dbd0590faaf7d7013430f3da07f923a5369e4b0100da773a88c74abd77815" +
	"45ec6ec88ba0ba216ff308b8c74f14f5ccfd39bc11f5b911baf31124743e0c07" +
	"4fac2ab2b13c00fabb8cd87d175b8d39c62331327d6e2038d0c358e2b1fe536b" +
	"c710137ec67c675943704a2d7f76debd45435660cde9247bb741ce56edd37475" +
	"cc9d4861c8196608fb28601f8311c09bbd7153360176a8c0dc1d18851965cecf" +
	"142e6c3215bc2c5e8ffc3cf02df55c04c922f4c3b857795241fdffcd26a8c0d2" +
	"e171d6f1f40ca8eb0c33402573bb31da0ca6ee0c4151943c242765e9b5c4e288" +
	"c082d072d9104d7fc08894412d0509fb97316ec1e9f45070dc3f0a904637608c" +
	"fb066ede6fa76ba3881896931987e70a98f01301ab7ceb25a5e298447d09e242" +
	"33d4ebcc9b70f60ff0b299cc4f64c46912ea56fe500e021f6d7a7962aa2e52af" +
	"a3edcda745e686eda1735b1e494f925083993cf4f6a849d708f7dc282ce6226f" +
	"f8faba9e0acf72747675994d3d9a4c54cdf854f0bd73e94f29d0e1249452d660" +
	"8071249592010ea97e642eed51ccd2fffd0b")

var testVectorSharedKey = mustDecodeHex(
	"bc989c9c1f576f380b5dc2237d01ae6317e8e4b202a7c43a1b5af3f8b5ea6e22")

var testVectorFailureKey = mustDecodeHex(
	"8e19fe2b1267ef9a634d79338ccebf03db9cc4c170e132a6b3d3a1433cf11f5a")
